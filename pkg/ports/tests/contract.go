package tests

import (
	"context"
	"testing"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/ports"
)

// ConfigLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.ConfigLoader.
// The loader must expose the fixture described by Fixture.
func ConfigLoaderContractTest(t *testing.T, loader ports.ConfigLoader) {
	t.Helper()

	ctx := context.Background()
	snap, err := loader.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error taking snapshot: %v", err)
	}

	t.Run("Domains", func(t *testing.T) {
		if len(snap.Domains) != 1 {
			t.Fatalf("expected 1 domain, got %d", len(snap.Domains))
		}
		d := snap.Domains[0]
		if d.Key != "smalltalk" || d.Name != "smalltalk" {
			t.Errorf("unexpected domain %q/%q", d.Key, d.Name)
		}
		if len(d.Skills) != 1 || d.Skills[0].Name != "greeting" {
			t.Fatalf("expected skill greeting, got %+v", d.Skills)
		}
	})

	t.Run("Skill languages", func(t *testing.T) {
		skill := snap.Domains[0].Skills[0]
		if _, ok := skill.Document("fr"); ok {
			t.Error("skill must not have a fr document")
		}
		doc, ok := skill.Document("en")
		if !ok {
			t.Fatal("skill must have an en document")
		}
		hello, ok := doc.Actions["hello"]
		if !ok {
			t.Fatal("action hello missing")
		}
		if hello.Type != domain.ActionDialog {
			t.Errorf("expected dialog, got %q", hello.Type)
		}
		if len(hello.UtteranceSamples) != 1 || hello.UtteranceSamples[0] != "Hi {there|}" {
			t.Errorf("unexpected utterances %v", hello.UtteranceSamples)
		}
		if len(hello.Answers) != 1 || hello.Answers[0] != "Hello %user%!" {
			t.Errorf("unexpected answers %v", hello.Answers)
		}
		if hello.Variables["user"].String() != "friend" {
			t.Errorf("expected action variable user=friend, got %q", hello.Variables["user"].String())
		}
	})

	t.Run("Global data", func(t *testing.T) {
		resolvers := snap.GlobalResolvers["en"]
		if len(resolvers) != 1 || resolvers[0].Name != "affirmation_denial" {
			t.Fatalf("unexpected global resolvers %+v", resolvers)
		}
		entities := snap.GlobalEntities["en"]
		if len(entities) != 1 || entities[0].Name != "color" {
			t.Fatalf("unexpected global entities %+v", entities)
		}
		if got := entities[0].Options["red"].Synonyms; len(got) != 2 {
			t.Errorf("unexpected synonyms %v", got)
		}
	})
}

// Fixture is the configuration every ConfigLoaderContractTest subject must expose,
// written as the files of a project tree (path -> JSON content).
var Fixture = map[string]string{
	"skills/smalltalk/domain.json":        `{"name": "smalltalk"}`,
	"skills/smalltalk/greeting/skill.json": `{"name": "greeting"}`,
	"skills/smalltalk/greeting/nlu/en.json": `{
  "actions": {
    "hello": {
      "type": "dialog",
      "utterance_samples": ["Hi {there|}"],
      "answers": ["Hello %user%!"],
      "variables": {"user": "friend"}
    }
  }
}`,
	"core/data/en/global-resolvers/affirmation_denial.json": `{
  "name": "affirmation_denial",
  "intents": {
    "affirmation": {"utterance_samples": ["{Yes|Yep}"], "value": true},
    "denial": {"utterance_samples": ["{No|Nope}"], "value": false}
  }
}`,
	"core/data/en/global-entities/color.json": `{
  "options": {
    "red": {"synonyms": ["red", "crimson"]},
    "blue": {"synonyms": ["blue"]}
  }
}`,
}
