package glossa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/glossa/internal/compiler"
	"github.com/aretw0/glossa/internal/runtime"
	"github.com/aretw0/glossa/pkg/adapters/file"
	loamAdapter "github.com/aretw0/glossa/pkg/adapters/loam"
	"github.com/aretw0/glossa/pkg/adapters/memory"
	"github.com/aretw0/glossa/pkg/corpus"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/pattern"
	"github.com/aretw0/glossa/pkg/ports"
	"github.com/aretw0/loam"
)

// DefaultModelDir is where models are saved, relative to the project root,
// when no store is configured.
var DefaultModelDir = filepath.Join(".glossa", "models")

// Model describes how one of the two trained models is persisted.
type Model struct {
	Artifact string
	Settings domain.ModelSettings
}

// Trainer is the high-level entry point for the Glossa library.
// It wraps the compiler and the training orchestrator behind a simplified API.
type Trainer struct {
	loader    ports.ConfigLoader
	store     ports.ModelStore
	locker    ports.Locker
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	languages []string
	limit     int
	models    map[string]Model
	Name      string
}

// Option defines a functional option for configuring the Trainer.
type Option func(*Trainer)

// WithLoader injects a custom ConfigLoader, bypassing the default Loam initialization.
func WithLoader(l ports.ConfigLoader) Option {
	return func(t *Trainer) {
		t.loader = l
	}
}

// WithStore sets where trained models are persisted.
func WithStore(s ports.ModelStore) Option {
	return func(t *Trainer) {
		t.store = s
	}
}

// WithLocker makes Train hold a lock while it writes to the store.
func WithLocker(l ports.Locker) Option {
	return func(t *Trainer) {
		t.locker = l
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Trainer) {
		t.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Trainer) {
		t.logger = logger
	}
}

// WithLanguages restricts training to the given languages.
// By default every language found in the project is trained.
func WithLanguages(langs ...string) Option {
	return func(t *Trainer) {
		t.languages = langs
	}
}

// WithExpansionLimit sets the per-template combination ceiling
// (0 keeps the default; negative values and values above pattern.MaxLimit
// are clamped to pattern.MaxLimit).
func WithExpansionLimit(limit int) Option {
	return func(t *Trainer) {
		t.limit = limit
	}
}

// WithModel configures the artifact and engine settings of a model
// (domain.ModelResolvers or domain.ModelMain).
func WithModel(name string, m Model) Option {
	return func(t *Trainer) {
		t.models[name] = m
	}
}

// DefaultModels returns the settings both models are trained with unless overridden.
func DefaultModels() map[string]Model {
	return map[string]Model{
		domain.ModelResolvers: {
			Artifact: domain.ModelResolvers,
			Settings: domain.ModelSettings{Threshold: 0.8, TrainByDomain: true},
		},
		domain.ModelMain: {
			Artifact: domain.ModelMain,
			Settings: domain.ModelSettings{Threshold: 0.8, TrainByDomain: true, ForceNER: true, CalculateSentiment: true},
		},
	}
}

// New initializes a new Trainer.
// By default, it reads the project tree from a Loam repository at dir and saves
// models under dir/.glossa/models.
// If WithLoader is provided, dir can be empty and Loam is skipped.
func New(dir string, opts ...Option) (*Trainer, error) {
	t := &Trainer{models: DefaultModels()}

	for _, opt := range opts {
		opt(t)
	}

	if t.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		t.Name = filepath.Base(absPath)

		// Strict mode keeps numbers as json.Number across formats.
		// The trainer never writes to the project tree.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		t.loader = loamAdapter.New(loam.NewTypedRepository[loamAdapter.DocumentMetadata](repo))

		if t.store == nil {
			t.store = file.New(filepath.Join(absPath, DefaultModelDir))
		}
	} else if dir != "" {
		t.Name = filepath.Base(dir)
	}

	if t.store == nil {
		t.store = memory.NewStore()
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if t.Name != "" {
		t.logger = t.logger.With("project", t.Name)
	}

	return t, nil
}

// Snapshot reads the project configuration once.
func (t *Trainer) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := t.loader.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return snap, nil
}

// Languages returns the configured languages, or every language of snap.
func (t *Trainer) Languages(snap *domain.Snapshot) []string {
	if len(t.languages) > 0 {
		return t.languages
	}
	return snap.Languages()
}

func (t *Trainer) compiler() *compiler.Compiler {
	return compiler.New(
		compiler.WithExpansionLimit(t.limit),
		compiler.WithLifecycleHooks(t.hooks),
		compiler.WithLogger(t.logger),
	)
}

// Compile returns the main corpus of lang (global entities and skill actions),
// without training anything. On error, the records compiled so far are returned.
func (t *Trainer) Compile(ctx context.Context, lang string) ([]domain.Record, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	c := t.compiler()
	return compiler.Collect(func(emit compiler.Emit) error {
		return c.MainCorpus(ctx, snap, lang, emit)
	})
}

// CompileResolvers returns the resolvers corpus of lang.
func (t *Trainer) CompileResolvers(ctx context.Context, lang string) ([]domain.Record, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	c := t.compiler()
	return compiler.Collect(func(emit compiler.Emit) error {
		return c.ResolversCorpus(ctx, snap, lang, emit)
	})
}

// Expand runs the pattern expander with the trainer's limit.
func (t *Trainer) Expand(template string) ([]string, error) {
	limit := t.limit
	if limit == 0 {
		limit = pattern.DefaultLimit
	}
	return pattern.NewExpander(limit).Expand(template)
}

// Train compiles both corpora for every language and persists both models.
// The report is returned even on failure; see runtime.Orchestrator.Run.
func (t *Trainer) Train(ctx context.Context) (*runtime.Report, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return &runtime.Report{}, err
	}

	opts := []runtime.Option{
		runtime.WithLifecycleHooks(t.hooks),
		runtime.WithLogger(t.logger),
		runtime.WithExpansionLimit(t.limit),
	}
	if t.locker != nil {
		opts = append(opts, runtime.WithLocker(t.locker, runtime.DefaultLockTTL))
	}

	return runtime.NewOrchestrator(opts...).Run(ctx, snap, t.Languages(snap), runtime.Models{
		Resolvers: t.sink(domain.ModelResolvers),
		Main:      t.sink(domain.ModelMain),
	})
}

func (t *Trainer) sink(name string) *corpus.Sink {
	m := t.models[name]
	return corpus.New(name, t.store,
		corpus.WithArtifact(m.Artifact),
		corpus.WithSettings(m.Settings),
		corpus.WithLogger(t.logger),
	)
}

// Model loads a persisted model by name (domain.ModelResolvers or domain.ModelMain).
func (t *Trainer) Model(ctx context.Context, name string) (*domain.Model, error) {
	artifact := name
	if m, ok := t.models[name]; ok && m.Artifact != "" {
		artifact = m.Artifact
	}
	return t.store.Load(ctx, artifact)
}

// Models lists the persisted artifacts.
func (t *Trainer) Models(ctx context.Context) ([]string, error) {
	return t.store.List(ctx)
}

// Watch returns a channel that signals when the underlying project changes.
// Returns error if the loader does not support watching.
func (t *Trainer) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := t.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying ConfigLoader.
func (t *Trainer) Loader() ports.ConfigLoader {
	return t.loader
}

// Store returns the model store.
func (t *Trainer) Store() ports.ModelStore {
	return t.store
}
