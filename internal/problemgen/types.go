package problemgen

import (
	"fmt"
	"time"
)

const (
	// MinOperand and MaxOperand bound each operand, inclusive.
	MinOperand = 10
	MaxOperand = 99
)

// Problem is one addition exercise. It is never mutated after creation;
// a new round replaces it.
type Problem struct {
	// Seq numbers problems within a session, starting at 1.
	Seq int

	Operand1 int
	Operand2 int

	// ShownAt is when the problem was generated.
	ShownAt time.Time
}

// Sum returns the correct answer.
func (p Problem) Sum() int {
	return p.Operand1 + p.Operand2
}

// Text renders the problem prompt, e.g. "34 + 57 = ?".
func (p Problem) Text() string {
	return fmt.Sprintf("%d + %d = ?", p.Operand1, p.Operand2)
}
