package codec

import "fmt"

// PacketCount returns how many packets of the given size n bytes occupy.
func PacketCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Packetize splits data into fixed-size packets laid out back to back in dst.
// The final packet is zero-padded. It returns the number of packets written.
func Packetize(dst, data []byte, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("packetize: invalid packet size %d", size)
	}
	count := PacketCount(len(data), size)
	if need := count * size; need > len(dst) {
		return 0, fmt.Errorf("packetize %d bytes into %d-byte packets needs %d bytes, have %d: %w",
			len(data), size, need, len(dst), ErrShortBuffer)
	}
	for p := 0; p < count; p++ {
		packet := dst[p*size : (p+1)*size]
		n := copy(packet, data[p*size:])
		clear(packet[n:])
	}
	return count, nil
}

// PacketizeSealed is Packetize for frames that end in a CRC trailer: each
// size-byte frame carries size-CRCSize bytes of data, zero-padded, and is
// then sealed. It returns the number of frames written.
func PacketizeSealed(dst, data []byte, size int) (int, error) {
	payload := size - CRCSize
	if payload <= 0 {
		return 0, fmt.Errorf("packetize: frame size %d leaves no room for data", size)
	}
	count := PacketCount(len(data), payload)
	if need := count * size; need > len(dst) {
		return 0, fmt.Errorf("packetize %d bytes into %d-byte frames needs %d bytes, have %d: %w",
			len(data), size, need, len(dst), ErrShortBuffer)
	}
	for p := 0; p < count; p++ {
		frame := Frame(dst, size, p)
		n := copy(frame[:payload], data[p*payload:])
		clear(frame[n:payload])
		if err := Seal(frame); err != nil {
			return p, err
		}
	}
	return count, nil
}

// Frame returns the i-th packet of a packetized buffer.
func Frame(buf []byte, size, i int) []byte {
	return buf[i*size : (i+1)*size]
}
