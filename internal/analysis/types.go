// Package analysis ties the pattern registry, context extractor, scoring
// pipeline, and frequency tracker together into the top-level operation:
// scan a failed pod's logs and produce a ranked diagnosis.
package analysis

import (
	"time"

	"github.com/podmortem/log-parser/internal/logcontext"
	"github.com/podmortem/log-parser/internal/patterns"
)

// Pod is the minimal pod metadata the engine consumes. The engine does not
// model Kubernetes beyond this shape.
type Pod struct {
	Name string `json:"name"`
}

// PodFailureData is the engine's sole input. Logs is a pointer so the
// engine can distinguish "absent" (nil, rejected as InvalidInput) from
// "present but empty" (pointer to "", a valid zero-match analysis per the
// empty-logs edge case).
type PodFailureData struct {
	Logs *string `json:"logs"`
	Pod  *Pod    `json:"pod"`
}

// MatchedEvent is a single primary-pattern hit, scored.
type MatchedEvent struct {
	LineNumber     int                     `json:"line_number"`
	MatchedPattern *patterns.Pattern       `json:"matched_pattern"`
	Context        logcontext.EventContext `json:"context"`
	Score          float64                 `json:"score"`
}

// AnalysisMetadata carries the invocation's provenance.
type AnalysisMetadata struct {
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	TotalLines       int       `json:"total_lines"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
	PatternsUsed     []string  `json:"patterns_used"`
}

// AnalysisSummary aggregates the events by severity.
type AnalysisSummary struct {
	SignificantEvents    int            `json:"significant_events"`
	HighestSeverity      string         `json:"highest_severity"`
	SeverityDistribution map[string]int `json:"severity_distribution"`
}

// AnalysisResult is the engine's sole output.
type AnalysisResult struct {
	AnalysisID string           `json:"analysis_id"`
	Events     []MatchedEvent   `json:"events"`
	Metadata   AnalysisMetadata `json:"metadata"`
	Summary    AnalysisSummary  `json:"summary"`
}
