package kernels

// Buffers is the working set of one stress iteration. It is allocated once
// and reset before every iteration.
type Buffers struct {
	A, B, C *Matrix
	Sort    []uint16
	Table   []uint32
	Src     []byte
	Dst     []byte
}

// NewBuffers allocates a working set for the given matrix, array and hash
// table sizes.
func NewBuffers(matrix, array, table int) *Buffers {
	return &Buffers{
		A:     NewMatrix(matrix),
		B:     NewMatrix(matrix),
		C:     NewMatrix(matrix),
		Sort:  make([]uint16, array),
		Table: make([]uint32, table),
		Src:   make([]byte, array),
		Dst:   make([]byte, array),
	}
}

// Reset loads the deterministic initial contents: A[i][j] = (i*j)&0xFF,
// B[i][j] = (i+j)&0xFF, a descending sort array, Src[i] = i&0xFF and an
// identity hash table.
func (b *Buffers) Reset() {
	n := b.A.N
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.A.Set(i, j, int16((i*j)&0xFF))
			b.B.Set(i, j, int16((i+j)&0xFF))
		}
	}
	size := len(b.Sort)
	for i := range b.Sort {
		b.Sort[i] = uint16(size - i)
	}
	for i := range b.Src {
		b.Src[i] = byte(i)
	}
	for i := range b.Table {
		b.Table[i] = uint32(i)
	}
}
