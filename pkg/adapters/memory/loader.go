package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/glossa/pkg/adapters/layout"
	"github.com/aretw0/glossa/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader from in-memory data.
type Loader struct {
	files    map[string][]byte
	snapshot *domain.Snapshot
}

// NewLoader creates a loader over raw project files (path -> JSON or YAML content).
// Files are decoded lazily, on every Snapshot call.
func NewLoader(files map[string]string) *Loader {
	data := make(map[string][]byte, len(files))
	for k, v := range files {
		data[k] = []byte(v)
	}
	return &Loader{files: data}
}

// NewFromSnapshot creates a loader that always returns the given snapshot.
// This is handy for tests that build the hierarchy in Go.
func NewFromSnapshot(snap *domain.Snapshot) *Loader {
	return &Loader{snapshot: snap}
}

// Snapshot decodes the files and assembles the hierarchy.
func (l *Loader) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if l.snapshot != nil {
		return l.snapshot, nil
	}

	paths := make([]string, 0, len(l.files))
	for p := range l.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	docs := make([]layout.Document, 0, len(paths))
	for _, p := range paths {
		var data map[string]any
		// YAML is a superset of JSON, so one decoder serves both formats.
		if err := yaml.Unmarshal(l.files[p], &data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
		docs = append(docs, layout.Document{ID: p, Data: data})
	}

	return layout.Assemble(docs)
}

// Files lists the raw file paths held by the loader, sorted.
func (l *Loader) Files() []string {
	paths := make([]string, 0, len(l.files))
	for p := range l.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
