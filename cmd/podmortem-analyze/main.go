// Command podmortem-analyze runs the pattern-matching and scoring engine
// against a local log file, printing the resulting AnalysisResult as
// JSON. It is debug/operational tooling in the style of a small retry CLI,
// not the HTTP surface that fronts the engine in production.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/podmortem/log-parser/internal/analysis"
	"github.com/podmortem/log-parser/internal/config"
	"github.com/podmortem/log-parser/internal/frequency"
	"github.com/podmortem/log-parser/internal/keywords"
	"github.com/podmortem/log-parser/internal/obslog"
	"github.com/podmortem/log-parser/internal/patterns"
	"github.com/podmortem/log-parser/internal/scoring"
)

var (
	logFile        string
	podName        string
	patternDir     string
	keywordDir     string
	configFile     string
	contextVariant string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "podmortem-analyze",
		Short: "Analyze a pod's captured log output against known failure patterns",
		RunE:  runAnalyze,
	}

	flags := cmd.Flags()
	flags.StringVar(&logFile, "log-file", "", "path to the captured log file (required)")
	flags.StringVar(&podName, "pod-name", "", "name of the failed pod (required)")
	flags.StringVar(&patternDir, "patterns-dir", "", "directory of pattern-set YAML files (required)")
	flags.StringVar(&keywordDir, "keywords-dir", "", "directory of keyword-weight JSON files (defaults to scoring.context.keywords-directory)")
	flags.StringVar(&configFile, "config", "", "optional config file path")
	flags.StringVar(&contextVariant, "context-variant", "", "override scoring.context.variant (regex|keyword)")

	cmd.MarkFlagRequired("log-file")
	cmd.MarkFlagRequired("pod-name")
	cmd.MarkFlagRequired("patterns-dir")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := obslog.New("cmd", obslog.LevelInfo)

	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if contextVariant != "" {
		cfg.Scoring.Context.Variant = contextVariant
	}
	if keywordDir == "" {
		keywordDir = cfg.Scoring.Context.KeywordsDirectory
	}

	registry := patterns.NewRegistry()
	report, err := registry.Load(patternDir)
	if err != nil {
		return fmt.Errorf("loading patterns: %w", err)
	}
	log.WithComponent("registry").Info("patterns loaded",
		"files_loaded", report.FilesLoaded,
		"files_skipped", report.FilesSkipped,
		"patterns_total", report.PatternsTotal,
		"errors", len(report.Errors),
	)

	weights, kwReport := keywords.LoadDirectory(keywordDir)
	for range kwReport.Conflicts {
		log.WithComponent("keywords").Warn("conflicting keyword weight, first-loaded value kept")
	}

	var contextScorer scoring.ContextScorer
	if cfg.Scoring.Context.Variant == "keyword" {
		contextScorer = scoring.NewKeywordWeightScorer(weights)
	} else {
		contextScorer = scoring.NewRegexClassScorer(cfg.Scoring.Context.MaxContextFactor)
	}

	tracker := frequency.NewTracker(frequency.Config{
		Threshold:       cfg.Scoring.Frequency.Threshold,
		MaxPenalty:      cfg.Scoring.Frequency.MaxPenalty,
		TimeWindowHours: cfg.Scoring.Frequency.TimeWindowHours,
	}, nil)

	pipeline := scoring.NewPipeline(
		scoring.NewProximityScorer(scoring.ProximityConfig{
			DecayConstant: cfg.Scoring.Proximity.DecayConstant,
			MaxWindow:     cfg.Scoring.Proximity.MaxWindow,
		}),
		scoring.NewSequenceScorer(),
		scoring.NewChronologicalScorer(scoring.ChronologicalConfig{
			EarlyThreshold:   cfg.Scoring.Chronological.EarlyBonusThreshold,
			MaxEarlyBonus:    cfg.Scoring.Chronological.MaxEarlyBonus,
			PenaltyThreshold: cfg.Scoring.Chronological.PenaltyThreshold,
		}),
		contextScorer,
		tracker,
	)

	orchestrator := analysis.NewOrchestrator(registry, pipeline, tracker)

	logBytes, err := os.ReadFile(logFile)
	if err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}
	logs := string(logBytes)

	result, err := orchestrator.Analyze(analysis.PodFailureData{
		Logs: &logs,
		Pod:  &analysis.Pod{Name: podName},
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	log.WithComponent("orchestrator").Info("analysis complete",
		"significant_events", result.Summary.SignificantEvents,
		"highest_severity", result.Summary.HighestSeverity,
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
