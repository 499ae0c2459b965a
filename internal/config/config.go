// Package config loads the engine's tunables from a layered source: CLI
// flags, environment variables, a config file, and finally the built-in
// defaults, in that precedence order.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config mirrors the configuration key table: pattern/keyword locations
// plus every scoring.* tunable, nested the way viper actually stores
// dotted keys internally.
type Config struct {
	Pattern PatternConfig `mapstructure:"pattern"`
	Scoring ScoringConfig `mapstructure:"scoring"`
}

type PatternConfig struct {
	Directory string `mapstructure:"directory"`
}

type ScoringConfig struct {
	Context       ContextConfig       `mapstructure:"context"`
	Proximity     ProximityConfig     `mapstructure:"proximity"`
	Chronological ChronologicalConfig `mapstructure:"chronological"`
	Frequency     FrequencyConfig     `mapstructure:"frequency"`
}

type ContextConfig struct {
	KeywordsDirectory string  `mapstructure:"keywords-directory"`
	MaxContextFactor  float64 `mapstructure:"max-context-factor"`
	Variant           string  `mapstructure:"variant"`
}

type ProximityConfig struct {
	DecayConstant float64 `mapstructure:"decay-constant"`
	MaxWindow     int     `mapstructure:"max-window"`
}

type ChronologicalConfig struct {
	EarlyBonusThreshold float64 `mapstructure:"early-bonus-threshold"`
	MaxEarlyBonus       float64 `mapstructure:"max-early-bonus"`
	PenaltyThreshold    float64 `mapstructure:"penalty-threshold"`
}

type FrequencyConfig struct {
	Threshold       float64 `mapstructure:"threshold"`
	MaxPenalty      float64 `mapstructure:"max-penalty"`
	TimeWindowHours float64 `mapstructure:"time-window-hours"`
}

// ValidationError reports a single invalid configuration field by name,
// value, and message rather than a bare string.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: field %q value %v: %s", e.Field, e.Value, e.Message)
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Pattern: PatternConfig{Directory: ""},
		Scoring: ScoringConfig{
			Context: ContextConfig{
				KeywordsDirectory: "keywords",
				MaxContextFactor:  2.5,
				Variant:           "regex",
			},
			Proximity: ProximityConfig{
				DecayConstant: 10.0,
				MaxWindow:     100,
			},
			Chronological: ChronologicalConfig{
				EarlyBonusThreshold: 0.2,
				MaxEarlyBonus:       2.5,
				PenaltyThreshold:    0.5,
			},
			Frequency: FrequencyConfig{
				Threshold:       10.0,
				MaxPenalty:      0.8,
				TimeWindowHours: 1.0,
			},
		},
	}
}

// keys lists every dotted configuration key, used both to seed defaults
// and to bind each one to its PODMORTEM_ environment variable — viper's
// AutomaticEnv only affects Get, not Unmarshal, so each leaf needs an
// explicit BindEnv to survive the final decode.
var keys = []string{
	"pattern.directory",
	"scoring.context.keywords-directory",
	"scoring.context.max-context-factor",
	"scoring.context.variant",
	"scoring.proximity.decay-constant",
	"scoring.proximity.max-window",
	"scoring.chronological.early-bonus-threshold",
	"scoring.chronological.max-early-bonus",
	"scoring.chronological.penalty-threshold",
	"scoring.frequency.threshold",
	"scoring.frequency.max-penalty",
	"scoring.frequency.time-window-hours",
}

// Load reads configuration from, in increasing precedence: the built-in
// defaults, an optional config file, PODMORTEM_-prefixed environment
// variables, and finally whatever the caller already bound onto v (CLI
// flags via v.BindPFlags before calling Load).
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	defaults := Default()
	setDefaults(v, defaults)

	v.SetEnvPrefix("PODMORTEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, fmt.Errorf("binding env for %s: %w", k, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := out.Validate(); err != nil {
		return Config{}, err
	}

	return out, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("pattern.directory", cfg.Pattern.Directory)
	v.SetDefault("scoring.context.keywords-directory", cfg.Scoring.Context.KeywordsDirectory)
	v.SetDefault("scoring.context.max-context-factor", cfg.Scoring.Context.MaxContextFactor)
	v.SetDefault("scoring.context.variant", cfg.Scoring.Context.Variant)
	v.SetDefault("scoring.proximity.decay-constant", cfg.Scoring.Proximity.DecayConstant)
	v.SetDefault("scoring.proximity.max-window", cfg.Scoring.Proximity.MaxWindow)
	v.SetDefault("scoring.chronological.early-bonus-threshold", cfg.Scoring.Chronological.EarlyBonusThreshold)
	v.SetDefault("scoring.chronological.max-early-bonus", cfg.Scoring.Chronological.MaxEarlyBonus)
	v.SetDefault("scoring.chronological.penalty-threshold", cfg.Scoring.Chronological.PenaltyThreshold)
	v.SetDefault("scoring.frequency.threshold", cfg.Scoring.Frequency.Threshold)
	v.SetDefault("scoring.frequency.max-penalty", cfg.Scoring.Frequency.MaxPenalty)
	v.SetDefault("scoring.frequency.time-window-hours", cfg.Scoring.Frequency.TimeWindowHours)
}

// Validate rejects configuration values the scoring pipeline cannot use.
func (c Config) Validate() error {
	if c.Scoring.Proximity.DecayConstant <= 0 {
		return &ValidationError{Field: "scoring.proximity.decay-constant", Value: c.Scoring.Proximity.DecayConstant, Message: "must be > 0"}
	}
	if c.Scoring.Context.Variant != "regex" && c.Scoring.Context.Variant != "keyword" {
		return &ValidationError{Field: "scoring.context.variant", Value: c.Scoring.Context.Variant, Message: `must be "regex" or "keyword"`}
	}
	return nil
}
