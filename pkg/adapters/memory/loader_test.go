package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/glossa/pkg/adapters/memory"
	"github.com/aretw0/glossa/pkg/domain"
	contract "github.com/aretw0/glossa/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader := memory.NewLoader(contract.Fixture)
	contract.ConfigLoaderContractTest(t, loader)
}

func TestInMemoryLoader_YAML(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"skills/leon/joke/nlu/en.yaml": `
actions:
  tell:
    type: logic
    utterance_samples:
      - Tell me a {joke|pun}
`,
	})

	snap, err := loader.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Domains, 1)

	doc, ok := snap.Domains[0].Skills[0].Document("en")
	require.True(t, ok)
	assert.Equal(t, domain.ActionLogic, doc.Actions["tell"].Type)
	assert.Equal(t, []string{"skills/leon/joke/nlu/en.yaml"}, loader.Files())
}

func TestInMemoryLoader_ParseError(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"skills/d/s/nlu/en.json": `{"actions": [`,
	})
	_, err := loader.Snapshot(context.Background())
	assert.Error(t, err)
}

func TestNewFromSnapshot(t *testing.T) {
	snap := &domain.Snapshot{Domains: []domain.Domain{{Key: "x", Name: "x"}}}
	got, err := memory.NewFromSnapshot(snap).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, got)
}
