package scoring

import (
	"math"
	"testing"
)

func TestChronologicalScorer_LastLineIsPenalized(t *testing.T) {
	s := NewChronologicalScorer(DefaultChronologicalConfig())
	got := s.Factor(2, 2) // position = 1.0
	if got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestChronologicalScorer_PenaltyThresholdIsNeutral(t *testing.T) {
	s := NewChronologicalScorer(DefaultChronologicalConfig())
	got := s.Factor(10, 20) // position = 0.5, at the penalty threshold
	if got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestChronologicalScorer_EarlyBand(t *testing.T) {
	s := NewChronologicalScorer(DefaultChronologicalConfig())
	got := s.Factor(1, 100) // position = 0.01, well under E=0.2
	want := 1.5 + (0.2-0.01)*(2.5-1.5)/0.2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestChronologicalScorer_MiddleBand(t *testing.T) {
	s := NewChronologicalScorer(DefaultChronologicalConfig())
	got := s.Factor(30, 100) // position = 0.3, between E and T
	want := 1.0 + (0.5-0.3)*0.5/(0.5-0.2)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestChronologicalScorer_NonPositiveTotalLinesIsNeutral(t *testing.T) {
	s := NewChronologicalScorer(DefaultChronologicalConfig())
	if got := s.Factor(5, 0); got != 1.0 {
		t.Fatalf("expected neutral 1.0, got %v", got)
	}
	if got := s.Factor(5, -3); got != 1.0 {
		t.Fatalf("expected neutral 1.0, got %v", got)
	}
}
