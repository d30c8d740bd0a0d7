package kernels

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash32_KnownValues(t *testing.T) {
	tests := []struct {
		key  uint32
		want uint32
	}{
		{0, 0},
		{1, 0x31251ba7},
		{2, 0x66a79298},
		{12345, 0x68296f19},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Hash32(tt.key), "key=%d", tt.key)
	}
}

func TestHashTableStress_Checksum(t *testing.T) {
	b := NewBuffers(2, 8, 512)
	b.Reset()
	assert.Equal(t, uint32(431720), HashTableStress(b.Table, 1000))

	small := []uint32{0, 1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, uint32(55), HashTableStress(small, 10))
}

func naiveMatMul(a, b *Matrix) []int16 {
	n := a.N
	out := make([]int16, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum int64
			for k := 0; k < n; k++ {
				sum += int64(a.At(i, k)) * int64(b.At(k, j))
			}
			out[i*n+j] = int16(uint16(sum & 0xFFFF))
		}
	}
	return out
}

func TestMatMul_MatchesNaive(t *testing.T) {
	for _, n := range []int{1, 3, 8, 32} {
		b := NewBuffers(n, 4, 4)
		b.Reset()
		require.NoError(t, MatMul(b.A, b.B, b.C))
		assert.Equal(t, naiveMatMul(b.A, b.B), b.C.Data, "n=%d", n)
	}
}

func TestMatMul_KnownCells(t *testing.T) {
	b := NewBuffers(32, 4, 4)
	b.Reset()
	require.NoError(t, MatMul(b.A, b.B, b.C))

	assert.Equal(t, int16(0), b.C.At(0, 0))
	assert.Equal(t, int16(10912), b.C.At(1, 1))
	assert.Equal(t, int16(-14272), b.C.At(31, 31))
}

func TestMatMul_DimensionMismatch(t *testing.T) {
	assert.Error(t, MatMul(NewMatrix(2), NewMatrix(3), NewMatrix(2)))
}

func TestBubbleSort(t *testing.T) {
	a := []uint16{5, 1, 4, 1, 9, 0}
	cmps := BubbleSort(a)
	assert.True(t, slices.IsSorted(a))
	assert.Equal(t, []uint16{0, 1, 1, 4, 5, 9}, a)
	assert.Equal(t, 15, cmps)

	again := slices.Clone(a)
	BubbleSort(again)
	assert.Equal(t, a, again, "sorting a sorted slice changes nothing")
}

func TestBubbleSort_AllPermutations(t *testing.T) {
	base := []uint16{3, 1, 4, 1, 5, 9}
	want := []uint16{1, 1, 3, 4, 5, 9}
	seen := 0
	permute(slices.Clone(base), 0, func(p []uint16) {
		seen++
		a := slices.Clone(p)
		BubbleSort(a)
		require.True(t, slices.IsSorted(a), "input %v", p)
		require.Equal(t, want, a, "input %v", p)

		again := slices.Clone(a)
		BubbleSort(again)
		require.Equal(t, a, again, "input %v", p)
	})
	assert.Equal(t, 720, seen)
}

func TestBubbleSort_SeededInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 0; n < 64; n++ {
		a := make([]uint16, n)
		for i := range a {
			a[i] = uint16(rng.IntN(16))
		}
		want := slices.Clone(a)
		slices.Sort(want)

		BubbleSort(a)
		require.Equal(t, want, a, "length %d", n)
		BubbleSort(a)
		require.Equal(t, want, a, "length %d", n)
	}
}

// permute calls fn with every ordering of a[k:] by recursive swapping.
func permute(a []uint16, k int, fn func([]uint16)) {
	if k == len(a) {
		fn(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, fn)
		a[k], a[i] = a[i], a[k]
	}
}

func TestBubbleSort_Degenerate(t *testing.T) {
	assert.Equal(t, 0, BubbleSort(nil))
	one := []uint16{7}
	assert.Equal(t, 0, BubbleSort(one))
	assert.Equal(t, []uint16{7}, one)
}

func TestRotateCopy(t *testing.T) {
	src := []byte{0x01, 0x00, 0x00, 0x80, 0xAB}
	dst := make([]byte, len(src))

	n := RotateCopy(dst, src)
	assert.Equal(t, 5, n)
	// 0x80000001 rotated left by one is 0x00000003.
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x00, 0xAB}, dst)
}

func TestRotateCopy_ShortDestination(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 6)
	assert.Equal(t, 6, RotateCopy(dst, src))
	assert.Equal(t, []byte{5, 6}, dst[4:])
}

func TestRandomAccess(t *testing.T) {
	a := []uint16{8, 7, 6, 5, 4, 3, 2, 1}
	assert.Equal(t, uint32(14), RandomAccess(a, 4))
	assert.Equal(t, []uint16{8, 7, 6, 5, 14, 3, 9, 10}, a)

	assert.Equal(t, uint32(0), RandomAccess(nil, 10))
}

func TestRandomAccess_AfterPartialSort(t *testing.T) {
	b := NewBuffers(2, 4096, 4)
	b.Reset()
	BubbleSort(b.Sort[:1024])
	assert.Equal(t, uint32(1047483), RandomAccess(b.Sort, 500))
}

func TestFib(t *testing.T) {
	assert.Equal(t, uint32(0), Fib(0))
	assert.Equal(t, uint32(1), Fib(1))
	assert.Equal(t, uint32(610), Fib(15))
}

func TestBuffers_Reset(t *testing.T) {
	b := NewBuffers(4, 300, 3)
	b.Reset()

	assert.Equal(t, int16(6), b.A.At(2, 3))
	assert.Equal(t, int16(5), b.B.At(2, 3))
	assert.Equal(t, uint16(300), b.Sort[0])
	assert.Equal(t, uint16(1), b.Sort[299])
	assert.Equal(t, byte(43), b.Src[299])
	assert.Equal(t, []uint32{0, 1, 2}, b.Table)
}
