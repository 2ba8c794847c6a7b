// Package rng provides the deterministic random stream used by the whole
// simulation. Every draw advances a single serializable State carried inside
// the world; nothing in the engine may touch math/rand or crypto/rand.
package rng

// seedFallback replaces a seed hash that collides with zero, which is the
// one degenerate state of the xorshift generator (it would emit zeros forever).
const seedFallback uint64 = 0x9E3779B97F4A7C15

// State is the generator state. It is exported and JSON-tagged so a persisted
// world can resume its random stream bit-for-bit.
type State struct {
	S uint64 `json:"s"`
}

// Seed derives a State from an arbitrary string using FNV-1a.
func Seed(seed string) *State {
	// FNV-1a 64-bit.
	var h uint64 = 0xcbf29ce484222325
	for i := 0; i < len(seed); i++ {
		h ^= uint64(seed[i])
		h *= 0x100000001b3
	}
	if h == 0 {
		h = seedFallback
	}
	return &State{S: h}
}

// next advances the stream (xorshift64*) and returns the raw draw.
func (r *State) next() uint64 {
	x := r.S
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.S = x
	return x * 0x2545F4914F6CDD1D
}

// NextUint32 returns the next 32 bits of the stream.
func (r *State) NextUint32() uint32 {
	return uint32(r.next() >> 32)
}

// Float01 returns a uniform float64 in [0, 1) using the top 53 bits.
func (r *State) Float01() float64 {
	return float64(r.next()>>11) / float64(1<<53)
}

// IntRange returns a uniform int in [min, max] inclusive.
// min > max is a programming error.
func (r *State) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min > max")
	}
	span := uint64(max - min + 1)
	return min + int(r.next()%span)
}

// Chance returns true with probability p (clamped to [0, 1]).
func (r *State) Chance(p float64) bool {
	if p <= 0 {
		// Still burn a draw so call sites consume the stream identically
		// regardless of the probability value.
		r.next()
		return false
	}
	return r.Float01() < p
}

// NormalApprox returns an approximately normal draw with mean 0 and standard
// deviation 1 (sum of 12 uniforms minus 6).
func (r *State) NormalApprox() float64 {
	sum := 0.0
	for i := 0; i < 12; i++ {
		sum += r.Float01()
	}
	return sum - 6.0
}

// Fork derives an independent stream from the current state without advancing
// it. Observation noise draws from forks so building a snapshot twice leaves
// the authoritative stream untouched.
func (r *State) Fork(label string) *State {
	h := r.S
	for i := 0; i < len(label); i++ {
		h ^= uint64(label[i])
		h *= 0x100000001b3
	}
	if h == 0 {
		h = seedFallback
	}
	return &State{S: h}
}

// Pick returns a uniformly chosen element of xs. Empty xs is a programming
// error.
func Pick[T any](r *State, xs []T) T {
	if len(xs) == 0 {
		panic("rng: Pick from empty slice")
	}
	return xs[r.IntRange(0, len(xs)-1)]
}
