package ports

import (
	"context"

	"github.com/aretw0/glossa/pkg/domain"
)

// ModelStore defines the interface for persisting trained model artifacts.
type ModelStore interface {
	// Save persists the model under the given artifact name, replacing any previous one.
	Save(ctx context.Context, name string, model *domain.Model) error

	// Load retrieves a model.
	// Returns domain.ErrModelNotFound if the artifact does not exist.
	Load(ctx context.Context, name string) (*domain.Model, error)

	// Delete removes a model. Deleting a missing model is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored models.
	List(ctx context.Context) ([]string, error)
}
