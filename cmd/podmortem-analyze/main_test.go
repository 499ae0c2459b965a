package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestRunAnalyze_EndToEnd(t *testing.T) {
	patternsDir := t.TempDir()
	os.WriteFile(filepath.Join(patternsDir, "jvm.yaml"), []byte(`
library_id: jvm
patterns:
  - id: oom
    name: OutOfMemoryError
    severity: HIGH
    primary_pattern:
      regex: "OutOfMemoryError"
      confidence: 0.9
`), 0o644)

	logPath := filepath.Join(t.TempDir(), "pod.log")
	os.WriteFile(logPath, []byte("INFO ok\nERROR OutOfMemoryError\n"), 0o644)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	logFile = logPath
	podName = "victim"
	patternDir = patternsDir
	keywordDir = filepath.Join(t.TempDir(), "missing-keywords")
	configFile = ""
	contextVariant = ""

	origStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := runAnalyze(cmd, nil)

	w.Close()
	os.Stdout = origStdout
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var captured bytes.Buffer
	captured.ReadFrom(r)

	var result struct {
		Events []struct {
			Score float64 `json:"score"`
		} `json:"events"`
	}
	if err := json.Unmarshal(captured.Bytes(), &result); err != nil {
		t.Fatalf("unexpected non-JSON output: %v\n%s", err, captured.String())
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}
}
