// Package loam loads the project tree through a Loam repository.
package loam

import (
	"context"
	"fmt"

	"github.com/aretw0/glossa/pkg/adapters/layout"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/loam"
)

// WatchPattern selects the documents that can change a snapshot.
const WatchPattern = "**/*.{md,json,yaml,yml}"

// Loader adapts the Loam library to the ports.ConfigLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DocumentMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Snapshot lists every document of the repository and assembles the hierarchy.
// A skill without an NLU file for a language simply has no document for it.
func (l *Loader) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	out := make([]layout.Document, 0, len(docs))
	for _, doc := range docs {
		id := layout.TrimExtension(doc.ID)
		if layout.Hidden(id) {
			continue
		}

		// en.json next to en.yaml would silently shadow one another.
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID

		out = append(out, layout.Document{ID: id, Data: doc.Data.fields()})
	}

	return layout.Assemble(out)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, WatchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				id := layout.TrimExtension(evt.ID)
				// Trained artifacts live under .glossa; saving them must not retrigger.
				if layout.Hidden(id) {
					continue
				}
				// Loam debounces on its side; pass the changed ID up.
				select {
				case ch <- id:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
