package scoring

import (
	"regexp"
	"testing"

	"github.com/podmortem/log-parser/internal/patterns"
)

func seqEvent(re string) patterns.SequenceEvent {
	return patterns.SequenceEvent{Compiled: regexp.MustCompile(re)}
}

func TestSequenceScorer_NoSequences(t *testing.T) {
	s := NewSequenceScorer()
	if got := s.Factor(makeLines(5), 2, nil); got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestSequenceScorer_FullChainMatches(t *testing.T) {
	lines := []string{"start", "connecting", "timeout", "retry", "FAILURE"}
	seq := patterns.SequencePattern{
		Events: []patterns.SequenceEvent{
			seqEvent("start"),
			seqEvent("connecting"),
			seqEvent("timeout"),
		},
		BonusMultiplier: 0.5,
	}

	s := NewSequenceScorer()
	got := s.Factor(lines, 4, []patterns.SequencePattern{seq}) // primary at FAILURE, index 4
	if got != 1.5 {
		t.Fatalf("expected 1.5, got %v", got)
	}
}

func TestSequenceScorer_LastEventOutsideWindowFails(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "noise"
	}
	lines[0] = "trigger"

	seq := patterns.SequencePattern{
		Events:          []patterns.SequenceEvent{seqEvent("trigger")},
		BonusMultiplier: 1.0,
	}

	s := NewSequenceScorer()
	got := s.Factor(lines, 10, []patterns.SequencePattern{seq}) // p=10, window [5,15], trigger at 0
	if got != 1.0 {
		t.Fatalf("expected no bonus when last event is outside the window, got %v", got)
	}
}

func TestSequenceScorer_CursorAnchoringQuirk(t *testing.T) {
	// B (the last event) actually matches at index 0, well before the
	// primary at index 2. Anchoring the backward scan for A at B's real
	// location (cursor=0) would find nothing before it and fail the
	// sequence. matchesSequence instead resets the cursor to the primary
	// index p=2 regardless of where B actually matched, so A (at index 1,
	// after B) is still found and the sequence succeeds. This test locks
	// in that deliberate behavior.
	lines := []string{"B-match", "A-match", "primary trigger line"}
	seq := patterns.SequencePattern{
		Events: []patterns.SequenceEvent{
			seqEvent("A-match"),
			seqEvent("B-match"),
		},
		BonusMultiplier: 1.0,
	}

	s := NewSequenceScorer()
	got := s.Factor(lines, 2, []patterns.SequencePattern{seq})
	if got != 2.0 {
		t.Fatalf("expected cursor-anchoring quirk to let the sequence succeed, got %v", got)
	}
}

func TestSequenceScorer_EarlierEventNotFoundFails(t *testing.T) {
	lines := []string{"nothing-relevant", "middle", "primary-is-last"}
	seq := patterns.SequencePattern{
		Events: []patterns.SequenceEvent{
			seqEvent("absent-regex"),
			seqEvent("primary-is-last"),
		},
		BonusMultiplier: 1.0,
	}

	s := NewSequenceScorer()
	got := s.Factor(lines, 2, []patterns.SequencePattern{seq})
	if got != 1.0 {
		t.Fatalf("expected sequence to fail, got %v", got)
	}
}
