package codec

import (
	"encoding/binary"
	"fmt"
)

const (
	// CRCPolynomial is the CCITT generator polynomial x^16 + x^12 + x^5 + 1.
	CRCPolynomial = 0x1021

	// CRCInit is the register preset.
	CRCInit = 0xFFFF

	// CRCSize is the length in bytes of a sealed frame trailer.
	CRCSize = 2
)

// CRC16 computes the CRC-16/CCITT-FALSE checksum of data.
func CRC16(data []byte) uint16 {
	return UpdateCRC16(CRCInit, data)
}

// UpdateCRC16 continues a CRC computation from a previous register value.
func UpdateCRC16(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc ^= uint16(b) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ CRCPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Seal writes the big-endian CRC-16 of frame[:len(frame)-2] into the last two
// bytes of frame.
func Seal(frame []byte) error {
	if len(frame) < CRCSize {
		return fmt.Errorf("seal %d-byte frame: %w", len(frame), ErrShortBuffer)
	}
	body := len(frame) - CRCSize
	binary.BigEndian.PutUint16(frame[body:], CRC16(frame[:body]))
	return nil
}

// Verify reports whether a sealed frame's trailer matches its body.
func Verify(frame []byte) bool {
	if len(frame) < CRCSize {
		return false
	}
	body := len(frame) - CRCSize
	return binary.BigEndian.Uint16(frame[body:]) == CRC16(frame[:body])
}
