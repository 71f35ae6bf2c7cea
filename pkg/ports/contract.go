package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunModelStoreContract runs a suite of tests to verify that a ModelStore implementation
// adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	name := "contract-model-" + time.Now().Format("20060102150405")

	newModel := func(n string) *domain.Model {
		return &domain.Model{
			Name:      n,
			RunID:     "run-" + n,
			TrainedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Settings:  domain.ModelSettings{Threshold: 0.8, TrainByDomain: true},
			Languages: []string{"en"},
			Corpus: []domain.Record{
				domain.NewDomainAssignment("en", "greeting.hello", "smalltalk"),
				domain.NewDocument("en", "Hi", "greeting.hello"),
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		model := newModel(name)

		err := store.Save(ctx, name, model)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, model.RunID, loaded.RunID)
		assert.Equal(t, model.Settings, loaded.Settings)
		assert.Equal(t, model.Corpus, loaded.Corpus)
		assert.True(t, model.TrainedAt.Equal(loaded.TrainedAt))
	})

	t.Run("Save replaces", func(t *testing.T) {
		model := newModel(name)
		model.RunID = "second-run"
		require.NoError(t, store.Save(ctx, name, model))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "second-run", loaded.RunID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, newModel(name)))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Load after Delete should return ErrModelNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, newModel(id1))
		_ = store.Save(ctx, id2, newModel(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
