package patterns

import (
	"fmt"
	"regexp"
)

// compile translates a Definition into a Pattern, precompiling every regex
// exactly once. An invalid regex anywhere in the pattern invalidates only
// this pattern, never the containing Set.
func compile(d Definition, file string) (*Pattern, *LoadError) {
	if d.ID == "" {
		return nil, &LoadError{File: file, Message: "pattern has empty id"}
	}

	primaryRe, err := regexp.Compile(d.PrimaryPattern.Regex)
	if err != nil {
		return nil, &LoadError{File: file, Pattern: d.ID, Message: "invalid primary_pattern regex", Err: err}
	}

	p := &Pattern{
		ID:                d.ID,
		Name:              d.Name,
		Severity:          d.Severity,
		ContextExtraction: d.ContextExtraction,
		PrimaryPattern: PrimaryPattern{
			Compiled:   primaryRe,
			Confidence: d.PrimaryPattern.Confidence,
		},
	}

	for _, s := range d.SecondaryPatterns {
		re, err := regexp.Compile(s.Regex)
		if err != nil {
			return nil, &LoadError{File: file, Pattern: d.ID, Message: fmt.Sprintf("invalid secondary_pattern regex %q", s.Regex), Err: err}
		}
		p.SecondaryPatterns = append(p.SecondaryPatterns, SecondaryPattern{
			Compiled:        re,
			Weight:          s.Weight,
			ProximityWindow: s.ProximityWindow,
		})
	}

	for _, seq := range d.SequencePatterns {
		var events []SequenceEvent
		for _, ev := range seq.Events {
			re, err := regexp.Compile(ev.Regex)
			if err != nil {
				return nil, &LoadError{File: file, Pattern: d.ID, Message: fmt.Sprintf("invalid sequence event regex %q", ev.Regex), Err: err}
			}
			events = append(events, SequenceEvent{Compiled: re})
		}
		p.SequencePatterns = append(p.SequencePatterns, SequencePattern{
			Description:     seq.Description,
			Events:          events,
			BonusMultiplier: seq.BonusMultiplier,
		})
	}

	return p, nil
}
