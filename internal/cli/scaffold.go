package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/glossa/internal/config"
	loamAdapter "github.com/aretw0/glossa/pkg/adapters/loam"
	"github.com/aretw0/loam"
	"gopkg.in/yaml.v3"
)

// sampleProject is a one-domain, one-skill project with a global resolver and a
// global entity. Keys are document IDs.
var sampleProject = map[string]loamAdapter.DocumentMetadata{
	"skills/smalltalk/domain.yaml": {Name: "smalltalk"},
	"skills/smalltalk/greeting/skill.yaml": {Name: "greeting"},
	"skills/smalltalk/greeting/nlu/en.yaml": {
		Variables: map[string]any{"user": "friend"},
		Actions: map[string]any{
			"hello": map[string]any{
				"type":              "dialog",
				"utterance_samples": []any{"{Hi|Hello} [there|]", "good {morning|evening}"},
				"answers":           []any{"Hello %user%!", "Hi %user%, how can I help?"},
			},
			"paint": map[string]any{
				"type":              "logic",
				"utterance_samples": []any{"paint it {red|blue}"},
				"slots": []any{map[string]any{
					"name":      "color",
					"item":      map[string]any{"type": "entity", "name": "color"},
					"questions": []any{"Which color?"},
				}},
			},
		},
	},
	"core/data/en/global-resolvers/affirmation_denial.yaml": {
		Name: "affirmation_denial",
		Intents: map[string]any{
			"affirmation": map[string]any{"utterance_samples": []any{"{Yes|Yep|Sure}"}, "value": true},
			"denial":      map[string]any{"utterance_samples": []any{"{No|Nope}"}, "value": false},
		},
	},
	"core/data/en/global-entities/color.yaml": {
		Options: map[string]any{
			"red":  map[string]any{"synonyms": []any{"red", "crimson"}},
			"blue": map[string]any{"synonyms": []any{"blue", "navy"}},
		},
	},
}

// Scaffold writes a sample project and a default configuration into dir.
// It refuses to touch a directory that already holds a project.
// It returns the created document IDs.
func Scaffold(ctx context.Context, dir string) ([]string, error) {
	if projectExists(dir) {
		return nil, fmt.Errorf("%s already contains a project", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	// Plain file generation: no commits, and never redirected to a temp dir.
	repo, err := loam.Init(absPath, loam.WithVersioning(false), loam.WithForceTemp(false))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	typedRepo := loam.NewTypedRepository[loamAdapter.DocumentMetadata](repo)

	ids := make([]string, 0, len(sampleProject))
	for id := range sampleProject {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		err := typedRepo.Save(ctx, &loam.DocumentModel[loamAdapter.DocumentMetadata]{
			ID:   id,
			Data: sampleProject[id],
		})
		if err != nil {
			return nil, fmt.Errorf("save %s: %w", id, err)
		}
	}

	cfgPath := filepath.Join(absPath, config.DefaultFile)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			return nil, err
		}
		ids = append(ids, config.DefaultFile)
	}
	return ids, nil
}
