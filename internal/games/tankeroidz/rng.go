package tankeroidz

import (
	"crypto/rand"
	"encoding/binary"
)

// RNG is a deterministic pseudo-random number generator (64-bit LCG).
// Every random decision in a round draws from one RNG so a seed and an input
// script fully determine the outcome.
type RNG struct {
	state uint64
}

// NewRNG creates an RNG with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits; the low bits of an LCG have short periods.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Between returns a random int in [lo, hi], both inclusive.
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// State returns the generator state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}

// RandomSeed returns a non-zero seed from the operating system's CSPRNG.
func RandomSeed() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1) //#nosec G115 -- top bit cleared
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
