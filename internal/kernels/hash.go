package kernels

const hashMul = 0x45d9f3b

// Hash32 mixes a 32-bit key: two xorshift-multiply rounds and a final xorshift.
func Hash32(key uint32) uint32 {
	key = ((key >> 16) ^ key) * hashMul
	key = ((key >> 16) ^ key) * hashMul
	return (key >> 16) ^ key
}

// HashTableStress runs iterations of insert-then-chase over table and
// returns the running checksum. table must be non-empty.
func HashTableStress(table []uint32, iterations int) uint32 {
	size := uint32(len(table))
	var checksum uint32
	for i := 0; i < iterations; i++ {
		key := uint32(i)
		h := Hash32(key) % size
		table[h] ^= key
		checksum += table[h]
		checksum ^= table[table[h]%size]
	}
	return checksum
}
