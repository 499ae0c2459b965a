package analysis

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/podmortem/log-parser/internal/logcontext"
	"github.com/podmortem/log-parser/internal/patterns"
	"github.com/podmortem/log-parser/internal/scoring"
)

var lineSplitRe = regexp.MustCompile(`\r?\n`)

// Clock abstracts time.Now so orchestrator tests can pin processing-time
// and analyzed-at values.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// FrequencyRecorder is the write side of the frequency tracker the
// orchestrator reports into after scoring each match.
type FrequencyRecorder interface {
	Record(patternID string)
}

// Orchestrator holds the collaborators needed for one end-to-end analysis:
// the pattern registry, the scoring pipeline, and the frequency tracker
// the pipeline reports into.
type Orchestrator struct {
	Registry  *patterns.Registry
	Pipeline  *scoring.Pipeline
	Frequency FrequencyRecorder
	Clock     Clock
}

func NewOrchestrator(registry *patterns.Registry, pipeline *scoring.Pipeline, frequency FrequencyRecorder) *Orchestrator {
	return &Orchestrator{Registry: registry, Pipeline: pipeline, Frequency: frequency, Clock: systemClock{}}
}

// Analyze scans every log line against every loaded pattern, scoring and
// recording each primary match in order.
func (o *Orchestrator) Analyze(input PodFailureData) (*AnalysisResult, error) {
	if input.Logs == nil || input.Pod == nil {
		return nil, &InputError{Message: "logs and pod are both required"}
	}

	started := o.clock().Now()

	lines := splitLines(*input.Logs)
	totalLines := len(lines)

	sets := o.Registry.GetPatternSets()

	// Every loaded set has at least one pattern (the registry skips empty
	// ones) and every pattern in every set is tested against every line,
	// so all loaded sets are "considered" regardless of whether any of
	// their patterns end up matching.
	seenLibraryIDs := map[string]bool{}
	var orderedLibraryIDs []string
	for _, set := range sets {
		if set.LibraryID == "" || seenLibraryIDs[set.LibraryID] {
			continue
		}
		seenLibraryIDs[set.LibraryID] = true
		orderedLibraryIDs = append(orderedLibraryIDs, set.LibraryID)
	}

	var events []MatchedEvent

	for i, line := range lines {
		for _, set := range sets {
			for _, p := range set.Patterns {
				if p.PrimaryPattern.Compiled == nil || !p.PrimaryPattern.Compiled.MatchString(line) {
					continue
				}

				ctx := logcontext.Extract(lines, i, p.ContextExtraction)
				score := o.Pipeline.Score(lines, i, i+1, totalLines, p, ctx)

				events = append(events, MatchedEvent{
					LineNumber:     i + 1,
					MatchedPattern: p,
					Context:        ctx,
					Score:          score,
				})

				if o.Frequency != nil {
					o.Frequency.Record(p.ID)
				}
			}
		}
	}

	elapsed := o.clock().Now().Sub(started)

	return &AnalysisResult{
		AnalysisID: uuid.NewString(),
		Events:     events,
		Metadata: AnalysisMetadata{
			ProcessingTimeMs: elapsed.Milliseconds(),
			TotalLines:       totalLines,
			AnalyzedAt:       o.clock().Now(),
			PatternsUsed:     orderedLibraryIDs,
		},
		Summary: summarize(events),
	}, nil
}

func (o *Orchestrator) clock() Clock {
	if o.Clock == nil {
		return systemClock{}
	}
	return o.Clock
}

// splitLines implements the empty-log edge case: total_lines is 1 for an
// empty string input, otherwise the \r?\n-split count. Trailing empty
// elements produced by one or more terminal newlines are dropped, matching
// Java's String.split("\r?\n") (no explicit limit) that the scoring
// formulas assume.
func splitLines(logs string) []string {
	if logs == "" {
		return []string{""}
	}
	lines := lineSplitRe.Split(logs, -1)
	n := len(lines)
	for n > 0 && lines[n-1] == "" {
		n--
	}
	return lines[:n]
}

var severityRank = []patterns.Severity{
	patterns.SeverityCritical,
	patterns.SeverityHigh,
	patterns.SeverityMedium,
	patterns.SeverityLow,
	patterns.SeverityInfo,
}

func summarize(events []MatchedEvent) AnalysisSummary {
	dist := map[string]int{}
	highest := patterns.Severity(-1)
	hasHighest := false

	for _, e := range events {
		sev := e.MatchedPattern.Severity
		dist[sev.String()]++
		if !hasHighest || severityMoreSevere(sev, highest) {
			highest = sev
			hasHighest = true
		}
	}

	highestStr := "NONE"
	if hasHighest {
		highestStr = highest.String()
	}

	return AnalysisSummary{
		SignificantEvents:    len(events),
		HighestSeverity:      highestStr,
		SeverityDistribution: dist,
	}
}

func severityMoreSevere(a, b patterns.Severity) bool {
	rankOf := func(s patterns.Severity) int {
		for i, r := range severityRank {
			if r == s {
				return i
			}
		}
		return len(severityRank)
	}
	return rankOf(a) < rankOf(b)
}

// SeverityCount pairs a severity name with its count, for presentation.
type SeverityCount struct {
	Severity string
	Count    int
}

// OrderedSeverityDistribution returns the distribution in fixed rank order
// (CRITICAL -> INFO), for CLI/logging output. This is presentation only
// and does not change the JSON map contract of AnalysisSummary.
func OrderedSeverityDistribution(s AnalysisSummary) []SeverityCount {
	var out []SeverityCount
	for _, sev := range severityRank {
		if c, ok := s.SeverityDistribution[sev.String()]; ok {
			out = append(out, SeverityCount{Severity: sev.String(), Count: c})
		}
	}
	return out
}
