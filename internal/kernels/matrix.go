package kernels

import "fmt"

// Matrix is a dense square matrix of int16 stored row-major.
type Matrix struct {
	N    int
	Data []int16
}

// NewMatrix allocates an n×n zero matrix.
func NewMatrix(n int) *Matrix {
	return &Matrix{N: n, Data: make([]int16, n*n)}
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) int16 { return m.Data[i*m.N+j] }

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v int16) { m.Data[i*m.N+j] = v }

// MatMul computes c = a×b. Products accumulate in int32 and each result is
// truncated to its low 16 bits.
func MatMul(a, b, c *Matrix) error {
	n := a.N
	if b.N != n || c.N != n {
		return fmt.Errorf("matmul: dimension mismatch %d/%d/%d", a.N, b.N, c.N)
	}
	for i := 0; i < n; i++ {
		row := a.Data[i*n : i*n+n]
		for j := 0; j < n; j++ {
			var sum int32
			for k, av := range row {
				sum += int32(av) * int32(b.Data[k*n+j])
			}
			c.Data[i*n+j] = int16(sum)
		}
	}
	return nil
}
