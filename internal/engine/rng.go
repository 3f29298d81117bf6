package engine

import (
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// Source abstracts the uniform random stream the loot tables draw from.
// Production uses a PCG; tests substitute a scripted sequence.
type Source interface {
	Float64() float64 // [0, 1)
}

type pcgSource struct {
	r *rand.Rand
}

func (s *pcgSource) Float64() float64 { return s.r.Float64() }

// NewSource returns the default time-seeded source.
// Non-cryptographic PRNG is intentional; outcomes are local-only.
// #nosec G404
func NewSource() Source {
	seed := time.Now().UnixNano()
	return NewSeededSource(uint64(seed))
}

// NewSeededSource returns a reproducible source for a fixed seed.
func NewSeededSource(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seedWord(seed)))}
}

func seedWord(seed uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(seed >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Sequence replays a scripted list of draws; once exhausted it repeats
// the final value. Used by tests to pin table outcomes.
type Sequence struct {
	vals []float64
	next int
}

// NewSequence builds a Sequence from raw [0,1) draws.
func NewSequence(vals ...float64) *Sequence {
	if len(vals) == 0 {
		vals = []float64{0}
	}
	return &Sequence{vals: vals}
}

// NewPercentSequence builds a Sequence from draws expressed on the
// [0,100) percent scale that the loot tables are written in.
func NewPercentSequence(vals ...float64) *Sequence {
	scaled := make([]float64, len(vals))
	for i, v := range vals {
		scaled[i] = v / 100
	}
	return NewSequence(scaled...)
}

func (s *Sequence) Float64() float64 {
	v := s.vals[s.next]
	if s.next < len(s.vals)-1 {
		s.next++
	}
	return v
}
