package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("scoring:\n  proximity:\n    decay-constant: 5.0\n"), 0o644)

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scoring.Proximity.DecayConstant != 5.0 {
		t.Fatalf("expected override to 5.0, got %v", cfg.Scoring.Proximity.DecayConstant)
	}
	if cfg.Scoring.Context.MaxContextFactor != 2.5 {
		t.Fatalf("expected untouched default 2.5, got %v", cfg.Scoring.Context.MaxContextFactor)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PODMORTEM_SCORING_FREQUENCY_THRESHOLD", "20")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scoring.Frequency.Threshold != 20 {
		t.Fatalf("expected env override to 20, got %v", cfg.Scoring.Frequency.Threshold)
	}
}

func TestValidate_RejectsNonPositiveDecayConstant(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Proximity.DecayConstant = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestValidate_RejectsUnknownContextVariant(t *testing.T) {
	cfg := Default()
	cfg.Scoring.Context.Variant = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected a validation error")
	}
}
