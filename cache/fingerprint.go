package cache

import (
	"encoding/binary"
	"hash/fnv"
)

// Fingerprint hashes s with FNV-64a.
func Fingerprint(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Mix64 combines two fingerprints into one.
func Mix64(a, b uint64) uint64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], a)
	binary.BigEndian.PutUint64(buf[8:], b)

	h := fnv.New64a()
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Key fingerprints a rendered statement for one dialect.
func Key(dialect, sql string) uint64 {
	return Mix64(Fingerprint(dialect), Fingerprint(sql))
}
