package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/glossa/pkg/adapters/file"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements ModelStore
var _ ports.ModelStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunModelStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "resolvers", &domain.Model{Name: "resolvers"}))

	_, err := os.Stat(filepath.Join(dir, "resolvers.json"))
	require.NoError(t, err, "artifact should be written as <name>.json")

	// Leftovers of interrupted writes and foreign files are not models.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-main-123.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"resolvers"}, names)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.Load(context.Background(), "main")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestFileStore_EmptyName(t *testing.T) {
	store := file.New(t.TempDir())
	assert.Error(t, store.Save(context.Background(), "", &domain.Model{}))
}

func TestFileStore_CorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.json"), []byte("{not json"), 0644))

	_, err := file.New(dir).Load(context.Background(), "main")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrModelNotFound)
}
