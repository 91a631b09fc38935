package pipeline

import (
	"math"
	"testing"
)

func TestOneHotKnownLevels(t *testing.T) {
	e := fitOneHot([]string{"wiring", "plumbing", "wiring"}, false)

	if e.Width() != 2 {
		t.Fatalf("expected width 2, got %d", e.Width())
	}

	// Levels are sorted, so plumbing comes first.
	got := e.Transform("plumbing")
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("unexpected encoding for plumbing: %v", got)
	}

	got = e.Transform("wiring")
	if got[0] != 0 || got[1] != 1 {
		t.Errorf("unexpected encoding for wiring: %v", got)
	}
}

func TestOneHotUnknownLevel(t *testing.T) {
	e := fitOneHot([]string{"plumbing", "wiring"}, false)

	got := e.Transform("landscaping")
	for i, v := range got {
		if v != 0 {
			t.Errorf("expected zero vector for unknown level, got %v at %d", v, i)
		}
	}
}

func TestOneHotDropFirst(t *testing.T) {
	e := fitOneHot([]string{"a", "b", "c"}, true)

	if e.Width() != 2 {
		t.Fatalf("expected width 2 with drop_first, got %d", e.Width())
	}

	// Reference level encodes as zeros.
	got := e.Transform("a")
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("expected zero vector for reference level, got %v", got)
	}

	got = e.Transform("b")
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("unexpected encoding for b: %v", got)
	}
}

func TestScaler(t *testing.T) {
	s := fitScaler([]float64{2, 4, 6})

	if s.Mean != 4 {
		t.Errorf("expected mean 4, got %f", s.Mean)
	}

	if got := s.Transform(4); got != 0 {
		t.Errorf("expected mean to scale to 0, got %f", got)
	}

	// Symmetric values scale symmetrically.
	if a, b := s.Transform(2), s.Transform(6); a != -b {
		t.Errorf("expected symmetric scaling, got %f and %f", a, b)
	}
}

func TestScalerConstantColumn(t *testing.T) {
	s := fitScaler([]float64{5, 5, 5})

	got := s.Transform(5)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("constant column must not divide by zero, got %f", got)
	}
	if got != 0 {
		t.Errorf("expected 0 for the constant value, got %f", got)
	}
}
