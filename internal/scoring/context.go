package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/podmortem/log-parser/internal/logcontext"
)

// ContextScorer is the injected capability computing context_factor from an
// EventContext. Two variants implement it; the pipeline holds exactly one.
type ContextScorer interface {
	Factor(ctx logcontext.EventContext) float64
}

var (
	errorLineRe  = regexp.MustCompile(`(?i)\b(ERROR|FATAL|CRITICAL|SEVERE)\b`)
	warnLineRe   = regexp.MustCompile(`(?i)\b(WARN|WARNING)\b`)
	stackFrameRe = regexp.MustCompile(`^\s*at\s+[\w.$]+\(.*\)\s*$`)
	exceptionRe  = regexp.MustCompile(`\b\w*Exception\b|\b\w*Error\b`)
)

// RegexClassScorer is Context Scorer Variant A: regex-class counting with a
// density penalty and an overall cap.
type RegexClassScorer struct {
	MaxContextFactor float64
}

// NewRegexClassScorer builds Variant A. maxFactor <= 0 falls back to the
// documented default of 2.5.
func NewRegexClassScorer(maxFactor float64) *RegexClassScorer {
	if maxFactor <= 0 {
		maxFactor = 2.5
	}
	return &RegexClassScorer{MaxContextFactor: maxFactor}
}

func (s *RegexClassScorer) Factor(ctx logcontext.EventContext) float64 {
	lines := ctx.AllLines()
	if len(lines) == 0 {
		return 1.0
	}

	score := 0.0
	stackTraceLines := 0
	errorLines := 0

	for _, line := range lines {
		switch {
		case errorLineRe.MatchString(line):
			score += 0.4
			errorLines++
		case warnLineRe.MatchString(line):
			score += 0.2
		}
		if stackFrameRe.MatchString(line) {
			score += 0.1
			stackTraceLines++
		}
		if exceptionRe.MatchString(line) {
			score += 0.3
		}
	}

	stackBonus := float64(stackTraceLines) * 0.1
	if stackBonus > 0.5 {
		stackBonus = 0.5
	}
	score += stackBonus

	total := len(lines)
	if total > 10 && float64(errorLines+stackTraceLines) > 0.7*float64(total) {
		score *= 0.8
	}

	factor := 1.0 + score
	if math.IsNaN(factor) {
		return 1.0
	}
	if factor > s.MaxContextFactor {
		return s.MaxContextFactor
	}
	return factor
}

// KeywordWeightScorer is Context Scorer Variant B: a keyword-weight sum
// over substring occurrences, case-sensitive, uncapped.
type KeywordWeightScorer struct {
	Weights map[string]float64
}

func NewKeywordWeightScorer(weights map[string]float64) *KeywordWeightScorer {
	return &KeywordWeightScorer{Weights: weights}
}

func (s *KeywordWeightScorer) Factor(ctx logcontext.EventContext) float64 {
	lines := ctx.AllLines()
	if len(lines) == 0 || len(s.Weights) == 0 {
		return 1.0
	}

	total := 0.0
	for _, line := range lines {
		for keyword, weight := range s.Weights {
			if keyword == "" {
				continue
			}
			occurrences := strings.Count(line, keyword)
			total += weight * float64(occurrences)
		}
	}

	factor := 1.0 + total
	if math.IsNaN(factor) {
		return 1.0
	}
	return factor
}
