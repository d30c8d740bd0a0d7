package vitals

import (
	"encoding/binary"
	"fmt"

	"github.com/roach88/hiot/internal/codec"
)

// Wire constants for SensorPacket.
const (
	DeviceID         = 0x42
	SensorVitalSigns = 0x01

	// SensorPacketSize is the encoded length of a SensorPacket.
	SensorPacketSize = 16

	headerSize = 12
)

// SensorPacket is one vital-signs telemetry record.
//
// Layout (little-endian):
//
//	0  device id      1  sensor type    2  timestamp
//	4  heart rate     6  SpO2           8  temperature (0.1 °C)
//	10 reserved (0)   12 checksum (CRC-16 of bytes 0..11, zero-extended)
type SensorPacket struct {
	DeviceID    uint8
	SensorType  uint8
	Timestamp   uint16
	HeartRate   uint16
	SpO2        uint16
	Temperature uint16
	Checksum    uint32
}

// NewSensorPacket derives the record for a sequence number and seals it.
func NewSensorPacket(seq uint16) SensorPacket {
	p := SensorPacket{
		DeviceID:    DeviceID,
		SensorType:  SensorVitalSigns,
		Timestamp:   seq * 100,
		HeartRate:   70 + seq%20,
		SpO2:        95 + seq%5,
		Temperature: 365 + seq%10,
	}
	p.Checksum = p.computeChecksum()
	return p
}

// Valid reports whether the stored checksum matches the record contents.
func (p SensorPacket) Valid() bool {
	return p.Checksum == p.computeChecksum()
}

func (p SensorPacket) computeChecksum() uint32 {
	var hdr [headerSize]byte
	p.putHeader(hdr[:])
	return uint32(codec.CRC16(hdr[:]))
}

func (p SensorPacket) putHeader(b []byte) {
	b[0] = p.DeviceID
	b[1] = p.SensorType
	binary.LittleEndian.PutUint16(b[2:], p.Timestamp)
	binary.LittleEndian.PutUint16(b[4:], p.HeartRate)
	binary.LittleEndian.PutUint16(b[6:], p.SpO2)
	binary.LittleEndian.PutUint16(b[8:], p.Temperature)
	b[10], b[11] = 0, 0
}

// AppendBinary appends the encoded record to b.
func (p SensorPacket) AppendBinary(b []byte) ([]byte, error) {
	var buf [SensorPacketSize]byte
	p.putHeader(buf[:])
	binary.LittleEndian.PutUint32(buf[headerSize:], p.Checksum)
	return append(b, buf[:]...), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p SensorPacket) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, SensorPacketSize))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *SensorPacket) UnmarshalBinary(b []byte) error {
	if len(b) != SensorPacketSize {
		return fmt.Errorf("sensor packet: want %d bytes, got %d", SensorPacketSize, len(b))
	}
	p.DeviceID = b[0]
	p.SensorType = b[1]
	p.Timestamp = binary.LittleEndian.Uint16(b[2:])
	p.HeartRate = binary.LittleEndian.Uint16(b[4:])
	p.SpO2 = binary.LittleEndian.Uint16(b[6:])
	p.Temperature = binary.LittleEndian.Uint16(b[8:])
	p.Checksum = binary.LittleEndian.Uint32(b[headerSize:])
	return nil
}
