package scoring

import "github.com/podmortem/log-parser/internal/patterns"

// SequenceScorer detects ordered sequence-event chains ending at or near a
// primary match (the "temporal factor").
type SequenceScorer struct{}

func NewSequenceScorer() *SequenceScorer {
	return &SequenceScorer{}
}

// Factor returns temporal_factor for a primary match at zero-based index p.
func (s *SequenceScorer) Factor(lines []string, p int, sequences []patterns.SequencePattern) float64 {
	if len(sequences) == 0 {
		return 1.0
	}

	total := 0.0
	for _, seq := range sequences {
		if matchesSequence(lines, p, seq.Events) {
			total += seq.BonusMultiplier
		}
	}
	return 1.0 + total
}

// matchesSequence walks a sequence's events backward from its last event.
// Once the last event is confirmed to match somewhere in [p-5, p+5], the
// scan cursor for earlier events resets to p itself rather than to wherever
// the last event actually matched, so an earlier event can still be found
// even if it sits chronologically after the last event's real match line.
// That anchoring is kept deliberately rather than "fixed" to scan back from
// the last event's own position.
func matchesSequence(lines []string, p int, events []patterns.SequenceEvent) bool {
	n := len(events)
	if n == 0 {
		return false
	}

	lo := p - 5
	if lo < 0 {
		lo = 0
	}
	hi := p + 5
	if hi > len(lines)-1 {
		hi = len(lines) - 1
	}

	last := events[n-1]
	found := false
	for i := lo; i <= hi; i++ {
		if last.Compiled != nil && last.Compiled.MatchString(lines[i]) {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	cursor := p
	for i := n - 2; i >= 0; i-- {
		ev := events[i]
		idx := -1
		for j := cursor - 1; j >= 0; j-- {
			if ev.Compiled != nil && ev.Compiled.MatchString(lines[j]) {
				idx = j
				break
			}
		}
		if idx == -1 {
			return false
		}
		cursor = idx
	}

	return true
}
