// Package keywords loads the process-wide, immutable-after-load keyword
// weight map used by the Context Scorer's keyword-weight variant.
package keywords

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// LoadError reports a single unparseable keyword file or missing
// directory. The engine proceeds with whatever weights loaded.
type LoadError struct {
	File    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return "keyword load error: file=" + e.File + ": " + e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Weights is the flattened, process-wide keyword -> weight map.
type Weights map[string]float64

// LoadReport summarizes a directory load.
type LoadReport struct {
	FilesLoaded int
	KeywordsSet int
	Conflicts   []string // keywords seen more than once; first-loaded value won
	Errors      []*LoadError
}

// LoadDirectory reads every *.json file in dir (nested mapping
// {category: {keyword: weight}}), flattens it, and merges files in
// directory order with first-loaded-wins conflict resolution. A missing
// directory is not fatal: Weights is returned empty and the error is
// recorded so Variant B can fall back to a neutral context_factor of 1.0.
func LoadDirectory(dir string) (Weights, *LoadReport) {
	report := &LoadReport{}
	weights := Weights{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		report.Errors = append(report.Errors, &LoadError{File: dir, Message: "cannot read keyword directory", Err: err})
		return weights, report
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			report.Errors = append(report.Errors, &LoadError{File: path, Message: "cannot read file", Err: err})
			continue
		}

		var nested map[string]map[string]float64
		if err := json.Unmarshal(data, &nested); err != nil {
			report.Errors = append(report.Errors, &LoadError{File: path, Message: "invalid json", Err: err})
			continue
		}

		report.FilesLoaded++
		for _, category := range nested {
			for keyword, weight := range category {
				if _, exists := weights[keyword]; exists {
					report.Conflicts = append(report.Conflicts, keyword)
					continue // first-loaded value wins
				}
				weights[keyword] = weight
				report.KeywordsSet++
			}
		}
	}

	return weights, report
}
