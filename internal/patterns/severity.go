package patterns

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity is the pattern-author-declared coarse severity of a failure.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	case SeverityInfo:
		return "INFO"
	default:
		return "INFO"
	}
}

// Multiplier returns the fixed severity multiplier from the scoring table.
// Unknown severities fall back to 1.0.
func (s Severity) Multiplier() float64 {
	switch s {
	case SeverityCritical:
		return 5.0
	case SeverityHigh:
		return 3.0
	case SeverityMedium:
		return 2.0
	case SeverityLow:
		return 1.5
	case SeverityInfo:
		return 1.0
	default:
		return 1.0
	}
}

// ParseSeverity performs a case-insensitive lookup; unknown strings map to
// SeverityInfo so that Multiplier() falls back to the neutral 1.0.
func ParseSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return SeverityCritical
	case "HIGH":
		return SeverityHigh
	case "MEDIUM":
		return SeverityMedium
	case "LOW":
		return SeverityLow
	case "INFO":
		return SeverityInfo
	default:
		return SeverityInfo
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for Severity.
func (s *Severity) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		return fmt.Errorf("severity is required")
	}
	*s = ParseSeverity(raw)
	return nil
}
