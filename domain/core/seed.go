package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// TrialSeed derives the seed for one trial from the base seed and the trial
// index. It is a pure function (no shared RNG state, no counters), so the
// same (base, trial) pair always yields the same seed regardless of how many
// workers run trials or in which order they complete. Trials derived from
// consecutive indices share no generator state, which keeps them
// statistically independent.
func TrialSeed(base int64, trial int) int64 {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(base))
	binary.BigEndian.PutUint64(buf[8:16], uint64(trial))
	sum := sha256.Sum256(buf[:])
	return int64(binary.BigEndian.Uint64(sum[0:8]))
}

// RunFingerprint hashes the reproducibility-relevant inputs of a run so two
// result sets can be compared for provenance.
func RunFingerprint(configJSON []byte, baseSeed int64, methods []string) Hash {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(baseSeed))

	data := make([]byte, 0, len(configJSON)+8+len(methods)*16)
	data = append(data, configJSON...)
	data = append(data, buf[:]...)
	for _, m := range methods {
		data = append(data, []byte(m)...)
		data = append(data, 0)
	}
	return NewHash(data)
}
