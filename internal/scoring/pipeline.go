package scoring

import (
	"math"

	"github.com/podmortem/log-parser/internal/logcontext"
	"github.com/podmortem/log-parser/internal/patterns"
)

// FrequencyPenalizer is the capability object the pipeline calls into for
// the cross-invocation frequency penalty. internal/frequency.Tracker
// implements it.
type FrequencyPenalizer interface {
	Penalty(patternID string) float64
}

// Pipeline composes the seven scoring factors into a single score. Each
// factor is independently computable; config disables a factor by forcing
// its neutral value (multipliers -> 1.0, penalty -> 0.0). The pipeline
// never caps the final score and never produces NaN.
type Pipeline struct {
	Proximity     *ProximityScorer
	Sequence      *SequenceScorer
	Chronological *ChronologicalScorer
	Context       ContextScorer
	Frequency     FrequencyPenalizer
}

// NewPipeline wires the capability trio plus the frequency penalizer.
func NewPipeline(proximity *ProximityScorer, sequence *SequenceScorer, chronological *ChronologicalScorer, context ContextScorer, frequency FrequencyPenalizer) *Pipeline {
	return &Pipeline{
		Proximity:     proximity,
		Sequence:      sequence,
		Chronological: chronological,
		Context:       context,
		Frequency:     frequency,
	}
}

// Score computes the score for a primary match of p at zero-based index
// pIndex within lines, with totalLines lines and 1-based lineNumber.
func (pl *Pipeline) Score(lines []string, pIndex int, lineNumber, totalLines int, p *patterns.Pattern, ctx logcontext.EventContext) float64 {
	base := neutralIfNaN(p.PrimaryPattern.Confidence, 0.0)
	severity := neutralIfNaN(p.Severity.Multiplier(), 1.0)

	chronological := 1.0
	if pl.Chronological != nil {
		chronological = neutralIfNaN(pl.Chronological.Factor(lineNumber, totalLines), 1.0)
	}

	proximity := 1.0
	if pl.Proximity != nil {
		proximity = neutralIfNaN(pl.Proximity.Factor(lines, pIndex, p.SecondaryPatterns), 1.0)
	}

	temporal := 1.0
	if pl.Sequence != nil {
		temporal = neutralIfNaN(pl.Sequence.Factor(lines, pIndex, p.SequencePatterns), 1.0)
	}

	context := 1.0
	if pl.Context != nil && p.ContextExtraction != nil {
		context = neutralIfNaN(pl.Context.Factor(ctx), 1.0)
	}

	penalty := 0.0
	if pl.Frequency != nil {
		penalty = neutralIfNaN(pl.Frequency.Penalty(p.ID), 0.0)
	}

	score := base * severity * chronological * proximity * temporal * context * (1 - penalty)
	return neutralIfNaN(score, 0.0)
}

func neutralIfNaN(v, neutral float64) float64 {
	if math.IsNaN(v) {
		return neutral
	}
	return v
}
