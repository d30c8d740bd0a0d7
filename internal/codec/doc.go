// Package codec implements the byte-level transmission pipeline used by the
// burst workload: CRC-16/CCITT integrity checks, run-length compression and
// fixed-size packetization.
//
// # Conventions
//
// All functions operate on caller-owned buffers. Nothing in this package
// allocates unless its name starts with Append, and nothing writes past the
// end of a destination slice: a destination that is too small yields
// ErrShortBuffer instead of a partial write.
//
// # CRC
//
// CRC16 is the CRC-16/CCITT-FALSE variant: polynomial 0x1021, initial value
// 0xFFFF, no input or output reflection, no final XOR. The standard check value
// is CRC16([]byte("123456789")) == 0x29B1.
//
// # Run-length encoding
//
// Encoded data is a sequence of (count, value) byte pairs with 1 <= count <= 255.
//
//	[AA AA AA BB] -> [03 AA 01 BB]
package codec
