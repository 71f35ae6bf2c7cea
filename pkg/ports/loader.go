package ports

import (
	"context"

	"github.com/aretw0/glossa/pkg/domain"
)

// ConfigLoader defines how the compiler obtains the configuration hierarchy.
// This allows the storage layer (Loam, Memory) to be decoupled.
type ConfigLoader interface {
	// Snapshot reads the domains, skills and global data once.
	// The compiler never goes back to the loader mid-walk.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that receives the ID of every changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
