// Package rng provides deterministic, string-keyed pseudo-random streams.
//
// Reproducibility is the requirement, not statistical quality: the same key
// must produce the same sequence on every run and on every platform. The
// generator is a plain xorshift64 (x ^= x<<13; x ^= x>>17; x ^= x<<5)
// seeded with the FNV-1a 64-bit hash of the key, with a zero seed promoted
// to 1 so the generator never locks up. Ports in other languages must use
// these exact constants to stay bit-compatible.
package rng

// FNV-1a 64-bit parameters.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// Hash64 returns the FNV-1a 64-bit hash of s.
func Hash64(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

// Mix64 scrambles a 64-bit value with one xorshift round followed by the
// FNV prime multiply. Used for order-independent tie-breaking (e.g. exact
// position overlaps) where a full stream is overkill.
func Mix64(x uint64) uint64 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x * fnvPrime64
}

// Stream is a deterministic xorshift64 generator.
type Stream struct {
	state uint64
}

// New creates a stream seeded from the FNV-1a hash of key.
func New(key string) *Stream {
	return NewSeed(Hash64(key))
}

// NewSeed creates a stream from a raw 64-bit seed.
func NewSeed(seed uint64) *Stream {
	if seed == 0 {
		seed = 1
	}
	return &Stream{state: seed}
}

// Next returns the next 64-bit value in the stream.
func (r *Stream) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a value in [0, 1) using the top 53 bits of Next.
func (r *Stream) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (r *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Range returns a value in [min, max).
func (r *Stream) Range(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Shuffle reorders n elements with a Fisher-Yates walk over swap.
func (r *Stream) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
