package kernels

import (
	"encoding/binary"
	"math/bits"
)

// RotateCopy copies src into dst as little-endian 32-bit words rotated left
// by one bit. A trailing partial word is copied unchanged. It returns the
// number of bytes written, min(len(dst), len(src)).
func RotateCopy(dst, src []byte) int {
	n := min(len(dst), len(src))
	i := 0
	for ; i+4 <= n; i += 4 {
		w := binary.LittleEndian.Uint32(src[i:])
		binary.LittleEndian.PutUint32(dst[i:], bits.RotateLeft32(w, 1))
	}
	copy(dst[i:n], src[i:n])
	return n
}

// RandomAccess walks a with a linear congruential index sequence, adding each
// visited element to a checksum and writing the checksum's low 16 bits back.
func RandomAccess(a []uint16, iterations int) uint32 {
	if len(a) == 0 {
		return 0
	}
	size := uint32(len(a))
	var checksum, idx uint32
	for i := 0; i < iterations; i++ {
		idx = (idx*1103515245 + 12345) % size
		checksum += uint32(a[idx])
		a[idx] = uint16(checksum)
	}
	return checksum
}

// Fib is the naive recursive Fibonacci number.
func Fib(n uint32) uint32 {
	if n <= 1 {
		return n
	}
	return Fib(n-1) + Fib(n-2)
}
