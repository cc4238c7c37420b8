package keyhash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Sum hashes key under seed. The seed bytes are folded into the digest ahead
// of the key, so identical keys only land in the same bucket within tables
// sharing a seed.
func Sum(seed uint32, key []byte) uint64 {
	var seedBytes [4]byte
	binary.LittleEndian.PutUint32(seedBytes[:], seed)

	var d xxhash.Digest
	d.Reset()
	_, _ = d.Write(seedBytes[:])
	_, _ = d.Write(key)
	return d.Sum64()
}
