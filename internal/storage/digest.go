package storage

import "github.com/zeebo/xxh3"

// Digest fingerprints the bytes of a persisted unit
func Digest(data []byte) uint64 {
	return xxh3.Hash(data)
}
