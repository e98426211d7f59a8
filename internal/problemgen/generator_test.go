package problemgen

import (
	"testing"
	"time"
)

func TestRandom_IntWithinBounds(t *testing.T) {
	r := NewSeeded(7)
	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		v := r.Int(MinOperand, MaxOperand)
		if v < MinOperand || v > MaxOperand {
			t.Fatalf("Int = %d, out of [%d,%d]", v, MinOperand, MaxOperand)
		}
		seen[v] = true
	}
	if !seen[MinOperand] || !seen[MaxOperand] {
		t.Error("expected both bounds to be drawn over 5000 samples")
	}
	if len(seen) != MaxOperand-MinOperand+1 {
		t.Errorf("distinct values = %d, want %d", len(seen), MaxOperand-MinOperand+1)
	}
}

func TestRandom_SwappedBounds(t *testing.T) {
	r := NewSeeded(1)
	for i := 0; i < 100; i++ {
		if v := r.Int(5, 3); v < 3 || v > 5 {
			t.Fatalf("Int(5,3) = %d", v)
		}
	}
}

func TestSeeded_Deterministic(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 20; i++ {
		if x, y := a.Int(10, 99), b.Int(10, 99); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestNew(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p := New(NewSequence(12, 34), 3, now)

	if p.Seq != 3 {
		t.Errorf("Seq = %d, want 3", p.Seq)
	}
	if p.Operand1 != 12 || p.Operand2 != 34 {
		t.Errorf("operands = %d, %d, want 12, 34", p.Operand1, p.Operand2)
	}
	if p.Sum() != 46 {
		t.Errorf("Sum = %d, want 46", p.Sum())
	}
	if p.Text() != "12 + 34 = ?" {
		t.Errorf("Text = %q", p.Text())
	}
	if !p.ShownAt.Equal(now) {
		t.Errorf("ShownAt = %v, want %v", p.ShownAt, now)
	}
}

func TestSequence_ClampsAndCycles(t *testing.T) {
	s := NewSequence(5, 50, 500)
	want := []int{10, 50, 99, 10}
	for i, w := range want {
		if got := s.Int(MinOperand, MaxOperand); got != w {
			t.Errorf("draw %d = %d, want %d", i, got, w)
		}
	}
}
