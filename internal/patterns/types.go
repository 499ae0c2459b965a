// Package patterns owns the validated, regex-precompiled pattern sets the
// scoring engine matches log lines against.
package patterns

import "regexp"

// Definition is the on-disk shape of a pattern, as decoded from YAML. It is
// never exposed on the hot scanning path; compile translates it into a
// Pattern with precompiled regexes.
type Definition struct {
	ID                string                `yaml:"id" json:"id"`
	Name              string                `yaml:"name" json:"name"`
	Severity          Severity              `yaml:"severity" json:"severity"`
	PrimaryPattern    PrimaryDefinition     `yaml:"primary_pattern" json:"primary_pattern"`
	SecondaryPatterns []SecondaryDefinition `yaml:"secondary_patterns,omitempty" json:"secondary_patterns,omitempty"`
	SequencePatterns  []SequenceDefinition  `yaml:"sequence_patterns,omitempty" json:"sequence_patterns,omitempty"`
	ContextExtraction *ContextExtraction    `yaml:"context_extraction,omitempty" json:"context_extraction,omitempty"`
}

type PrimaryDefinition struct {
	Regex      string  `yaml:"regex" json:"regex"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

type SecondaryDefinition struct {
	Regex           string  `yaml:"regex" json:"regex"`
	Weight          float64 `yaml:"weight" json:"weight"`
	ProximityWindow int     `yaml:"proximity_window" json:"proximity_window"`
}

type SequenceDefinition struct {
	Description     string            `yaml:"description" json:"description"`
	Events          []EventDefinition `yaml:"events" json:"events"`
	BonusMultiplier float64           `yaml:"bonus_multiplier" json:"bonus_multiplier"`
}

type EventDefinition struct {
	Regex string `yaml:"regex" json:"regex"`
}

// ContextExtraction configures the Context Extractor's windowing. It is
// shared, unchanged in shape, between the on-disk definition and the loaded
// pattern: it carries no regexes to compile.
type ContextExtraction struct {
	LinesBefore int `yaml:"lines_before" json:"lines_before"`
	LinesAfter  int `yaml:"lines_after" json:"lines_after"`
	// IncludeStackTrace is accepted but unused; no scorer currently reads
	// it, but dropping it would break decoding of existing pattern files.
	IncludeStackTrace bool `yaml:"include_stack_trace" json:"include_stack_trace"`
}

// Pattern is a Definition with every regex precompiled exactly once, at
// load time. Scorers only ever see this type.
type Pattern struct {
	ID                string
	Name              string
	Severity          Severity
	PrimaryPattern    PrimaryPattern
	SecondaryPatterns []SecondaryPattern
	SequencePatterns  []SequencePattern
	ContextExtraction *ContextExtraction
}

type PrimaryPattern struct {
	Compiled   *regexp.Regexp
	Confidence float64
}

type SecondaryPattern struct {
	Compiled        *regexp.Regexp
	Weight          float64
	ProximityWindow int
}

type SequencePattern struct {
	Description     string
	Events          []SequenceEvent
	BonusMultiplier float64
}

type SequenceEvent struct {
	Compiled *regexp.Regexp
}

// Set is a file-level grouping of patterns identified by a library ID.
type Set struct {
	LibraryID string                 `yaml:"library_id" json:"library_id"`
	Metadata  map[string]interface{} `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Patterns  []Definition           `yaml:"patterns" json:"patterns"`
}

// LoadedSet is Set translated to precompiled Patterns, retaining the
// library ID for AnalysisMetadata.patterns_used.
type LoadedSet struct {
	LibraryID string
	Patterns  []*Pattern
}
