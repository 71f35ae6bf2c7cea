package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/glossa/internal/presentation/graph"
	"github.com/aretw0/glossa/pkg/domain"
)

func snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Domains: []domain.Domain{{
			Key:  "leon",
			Name: "Leon",
			Skills: []domain.Skill{
				{
					Key:  "joke",
					Name: "joke",
					NLU: map[string]*domain.NLUDocument{"en": {Actions: map[string]domain.Action{
						"tell":  {Type: domain.ActionLogic, UtteranceSamples: []string{"a", "b"}},
						"laugh": {Type: domain.ActionDialog},
					}}},
				},
				{Key: "meaning-of-life", Name: "meaning_of_life"},
			},
		}},
		GlobalResolvers: map[string][]domain.Resolver{
			"en": {{Name: "affirmation_denial"}},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		contains []string
		absent   []string
	}{
		{
			name: "Shapes",
			lang: "en",
			contains: []string{
				"domain_leon((\"Leon\"))",
				"skill_leon_joke[[\"joke\"]]",
				"intent_joke_tell[/\"joke.tell\"/]",
				"intent_joke_laugh[\"joke.laugh\"]",
				"resolver_affirmation_denial{{\"affirmation_denial\"}}",
			},
		},
		{
			name: "Edges",
			lang: "en",
			contains: []string{
				"domain_leon --> skill_leon_joke",
				"skill_leon_joke -- \"2 samples\" --> intent_joke_tell",
				"skill_leon_joke --> intent_joke_laugh",
				"domain_system --> resolver_affirmation_denial",
			},
		},
		{
			name: "Missing language data",
			lang: "en",
			contains: []string{
				"domain_leon -.-> skill_leon_meaning_of_life",
				"class skill_leon_meaning_of_life missing;",
			},
		},
		{
			name: "Other language",
			lang: "fr",
			contains: []string{
				"class skill_leon_joke missing;",
			},
			absent: []string{
				"intent_joke_tell",
				"domain_system",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(snapshot(), tt.lang)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q\ngot:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q\ngot:\n%s", unwanted, got)
				}
			}
		})
	}
}
