package problemgen

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Generator is a uniform integer source.
type Generator interface {
	// Int returns a uniformly random integer in [lo, hi].
	Int(lo, hi int) int
}

// Random is a Generator backed by math/rand/v2. Safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a Random seeded from the runtime's entropy source.
func NewRandom() *Random {
	return &Random{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded creates a deterministic Random.
func NewSeeded(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) Int(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rng.IntN(hi-lo+1)
}

// New draws a fresh problem with two independent operands.
func New(gen Generator, seq int, now time.Time) *Problem {
	return &Problem{
		Seq:      seq,
		Operand1: gen.Int(MinOperand, MaxOperand),
		Operand2: gen.Int(MinOperand, MaxOperand),
		ShownAt:  now,
	}
}

// Sequence replays scripted values, cycling when exhausted. Values are
// clamped into the requested range. Intended for tests and demos.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence creates a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Int(lo, hi int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return lo
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return min(max(v, lo), hi)
}
