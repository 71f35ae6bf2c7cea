// Package corpus provides the TrainingSink used for real runs: it accumulates the
// folded records into a domain.Model and persists it through a ports.ModelStore.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/aretw0/glossa/internal/logging"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/ports"
	"github.com/google/uuid"
)

// Sink implements ports.TrainingSink.
// It is not safe for concurrent use.
type Sink struct {
	name     string
	artifact string
	settings domain.ModelSettings
	store    ports.ModelStore
	logger   *slog.Logger
	now      func() time.Time
	runID    func() string

	languages []string
	records   []domain.Record
}

// Option configures a Sink.
type Option func(*Sink)

// WithSettings sets the engine flags persisted with the model.
func WithSettings(settings domain.ModelSettings) Option {
	return func(s *Sink) {
		s.settings = settings
	}
}

// WithArtifact overrides the store key (defaults to the model name).
func WithArtifact(artifact string) Option {
	return func(s *Sink) {
		if artifact != "" {
			s.artifact = artifact
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		s.logger = logger
	}
}

// WithClock replaces time.Now, for reproducible artifacts.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// WithRunID replaces the run identifier generator.
func WithRunID(gen func() string) Option {
	return func(s *Sink) {
		s.runID = gen
	}
}

// New creates a sink for the named model, persisting to store.
func New(name string, store ports.ModelStore, opts ...Option) *Sink {
	s := &Sink{
		name:     name,
		artifact: name,
		store:    store,
		logger:   logging.NewNop(),
		now:      time.Now,
		runID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the model name.
func (s *Sink) Name() string { return s.name }

// Artifact returns the key the model is saved under.
func (s *Sink) Artifact() string { return s.artifact }

func (s *Sink) AddLanguage(lang string) {
	if !slices.Contains(s.languages, lang) {
		s.languages = append(s.languages, lang)
	}
}

func (s *Sink) AddDocument(lang, text, intent string) {
	s.records = append(s.records, domain.NewDocument(lang, text, intent))
}

func (s *Sink) AddAnswer(lang, intent, text string) {
	s.records = append(s.records, domain.NewAnswer(lang, intent, text))
}

func (s *Sink) AssignDomain(lang, intent, domainName string) {
	s.records = append(s.records, domain.NewDomainAssignment(lang, intent, domainName))
}

// AddSlot stores one slot record per prompt language, in language order.
func (s *Sink) AddSlot(intent, slotKey string, required bool, prompts map[string][]string) {
	langs := make([]string, 0, len(prompts))
	for lang := range prompts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		s.records = append(s.records, domain.NewSlotBinding(intent, slotKey, required, lang, prompts[lang]))
	}
}

func (s *Sink) AddEntity(lang, entity, option string, synonyms []string) {
	s.records = append(s.records, domain.NewEntityOption(lang, entity, option, synonyms))
}

// Model returns the model as it would be persisted now, without a run stamp.
func (s *Sink) Model() *domain.Model {
	return &domain.Model{
		Name:      s.name,
		Settings:  s.settings,
		Languages: slices.Clone(s.languages),
		Corpus:    slices.Clone(s.records),
	}
}

// Train stamps the accumulated model and saves it.
func (s *Sink) Train(ctx context.Context) error {
	model := s.Model()
	model.RunID = s.runID()
	model.TrainedAt = s.now().UTC()

	stats := model.Stats()
	s.logger.Debug("Persisting model",
		"model", s.name,
		"artifact", s.artifact,
		"run_id", model.RunID,
		"documents", stats.Documents,
		"intents", stats.Intents,
	)

	if err := s.store.Save(ctx, s.artifact, model); err != nil {
		return fmt.Errorf("save %s: %w", s.artifact, err)
	}
	return nil
}
