package codec

import "fmt"

// MaxRun is the longest run a single (count, value) pair can describe.
const MaxRun = 255

// EncodeRLE run-length encodes src into dst and returns the number of bytes
// written. Pairs are only ever written whole; if dst cannot hold the complete
// encoding, the bytes written so far are reported along with ErrShortBuffer.
func EncodeRLE(dst, src []byte) (int, error) {
	out := 0
	for in := 0; in < len(src); {
		if out+2 > len(dst) {
			return out, fmt.Errorf("rle encode at input offset %d: %w", in, ErrShortBuffer)
		}
		run := runLength(src[in:])
		dst[out] = byte(run)
		dst[out+1] = src[in]
		out += 2
		in += run
	}
	return out, nil
}

// AppendRLE appends the run-length encoding of src to dst.
func AppendRLE(dst, src []byte) []byte {
	for in := 0; in < len(src); {
		run := runLength(src[in:])
		dst = append(dst, byte(run), src[in])
		in += run
	}
	return dst
}

// EncodedLen returns the exact size of the encoding of src.
func EncodedLen(src []byte) int {
	n := 0
	for in := 0; in < len(src); in += runLength(src[in:]) {
		n += 2
	}
	return n
}

// DecodeRLE appends the decoding of src to dst.
func DecodeRLE(dst, src []byte) ([]byte, error) {
	if len(src)%2 != 0 {
		return dst, fmt.Errorf("rle decode: odd length %d: %w", len(src), ErrCorrupt)
	}
	for i := 0; i < len(src); i += 2 {
		count, value := src[i], src[i+1]
		if count == 0 {
			return dst, fmt.Errorf("rle decode: zero count at offset %d: %w", i, ErrCorrupt)
		}
		for j := byte(0); j < count; j++ {
			dst = append(dst, value)
		}
	}
	return dst, nil
}

// runLength counts identical leading bytes of b, capped at MaxRun. b must be non-empty.
func runLength(b []byte) int {
	n := 1
	for n < len(b) && n < MaxRun && b[n] == b[0] {
		n++
	}
	return n
}
