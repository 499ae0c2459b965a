package patterns

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// LoadReport summarizes a Registry.Load call, reporting what loaded
// successfully rather than only failing outright.
type LoadReport struct {
	FilesLoaded   int
	FilesSkipped  int
	PatternsTotal int
	Errors        []*LoadError
}

// Registry owns an immutable, read-only snapshot of loaded pattern sets
// once Load returns. Concurrent readers of GetPatternSets need no
// synchronization; the mutex only guards the brief window during Load.
type Registry struct {
	mu   sync.RWMutex
	sets []*LoadedSet
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Load reads every *.yaml/*.yml file in dir, compiles its patterns, and
// replaces the registry's snapshot. A file that fails to parse, or a
// pattern within it that fails to compile, is skipped and recorded in the
// report; loading continues with the remainder. Load returns a
// *FatalLoadError only when zero patterns loaded across every file.
func (r *Registry) Load(dir string) (*LoadReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Message: "cannot read pattern directory", Err: err}
	}

	report := &LoadReport{}
	var sets []*LoadedSet

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			report.FilesSkipped++
			report.Errors = append(report.Errors, &LoadError{File: path, Message: "cannot read file", Err: err})
			continue
		}

		var raw Set
		if err := yaml.Unmarshal(data, &raw); err != nil {
			report.FilesSkipped++
			report.Errors = append(report.Errors, &LoadError{File: path, Message: "invalid yaml", Err: err})
			continue
		}

		loaded := &LoadedSet{LibraryID: raw.LibraryID}
		for _, def := range raw.Patterns {
			p, lerr := compile(def, path)
			if lerr != nil {
				report.Errors = append(report.Errors, lerr)
				continue
			}
			loaded.Patterns = append(loaded.Patterns, p)
		}

		if len(loaded.Patterns) == 0 {
			report.FilesSkipped++
			continue
		}

		report.FilesLoaded++
		report.PatternsTotal += len(loaded.Patterns)
		sets = append(sets, loaded)
	}

	if report.PatternsTotal == 0 {
		return report, &FatalLoadError{Errors: report.Errors}
	}

	r.mu.Lock()
	r.sets = sets
	r.mu.Unlock()

	return report, nil
}

// GetPatternSets returns a stable, read-only view of the loaded sets.
func (r *Registry) GetPatternSets() []*LoadedSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*LoadedSet, len(r.sets))
	copy(out, r.sets)
	return out
}

// LibraryIDs returns the ordered, unique library IDs currently loaded.
func (r *Registry) LibraryIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool, len(r.sets))
	var ids []string
	for _, s := range r.sets {
		if s.LibraryID == "" || seen[s.LibraryID] {
			continue
		}
		seen[s.LibraryID] = true
		ids = append(ids, s.LibraryID)
	}
	sort.Strings(ids)
	return ids
}

// LoadFromSets installs already-constructed sets directly, bypassing the
// filesystem. Used by tests and by callers that source pattern definitions
// from somewhere other than a local directory.
func (r *Registry) LoadFromSets(sets []*LoadedSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets = sets
}
