// Package scoring implements the multi-factor scoring pipeline: proximity,
// sequence (temporal), chronological, and context factors composed into a
// single score per matched event.
package scoring

import (
	"math"

	"github.com/podmortem/log-parser/internal/patterns"
)

// ProximityConfig bounds the secondary-pattern search window.
type ProximityConfig struct {
	DecayConstant float64
	MaxWindow     int
}

// DefaultProximityConfig matches the documented configuration defaults.
func DefaultProximityConfig() ProximityConfig {
	return ProximityConfig{DecayConstant: 10.0, MaxWindow: 100}
}

// ProximityScorer computes the exponential-decay bonus contributed by
// secondary patterns found near a primary match.
type ProximityScorer struct {
	Config ProximityConfig
}

func NewProximityScorer(cfg ProximityConfig) *ProximityScorer {
	return &ProximityScorer{Config: cfg}
}

// Factor returns proximity_factor for a primary match at zero-based index p
// within lines, given the pattern's secondary patterns.
func (s *ProximityScorer) Factor(lines []string, p int, secondaries []patterns.SecondaryPattern) float64 {
	if len(secondaries) == 0 {
		return 1.0
	}

	decay := s.Config.DecayConstant
	if decay <= 0 || math.IsNaN(decay) {
		return 1.0
	}

	total := 0.0
	for _, sec := range secondaries {
		window := sec.ProximityWindow
		if s.Config.MaxWindow < window {
			window = s.Config.MaxWindow
		}
		if window < 0 {
			continue
		}

		start := p - window
		if start < 0 {
			start = 0
		}
		end := p + window + 1
		if end > len(lines) {
			end = len(lines)
		}

		bestD := -1
		for i := start; i < end; i++ {
			if i == p {
				continue
			}
			if sec.Compiled == nil || !sec.Compiled.MatchString(lines[i]) {
				continue
			}
			d := i - p
			if d < 0 {
				d = -d
			}
			if bestD == -1 || d < bestD {
				bestD = d
			}
		}

		if bestD == -1 {
			continue
		}
		total += sec.Weight * math.Exp(-float64(bestD)/decay)
	}

	factor := 1.0 + total
	if math.IsNaN(factor) {
		return 1.0
	}
	return factor
}
