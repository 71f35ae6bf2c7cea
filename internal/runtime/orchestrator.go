// Package runtime drives a training run: it compiles the resolvers and main
// corpora for every language into two sinks and then persists both.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/glossa/internal/compiler"
	"github.com/aretw0/glossa/internal/logging"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/ports"
)

// LockKey is the key a training run holds while it writes to a shared store.
const LockKey = "train"

// DefaultLockTTL bounds how long a crashed run can hold the training lock.
const DefaultLockTTL = 10 * time.Minute

// Models pairs the two sinks of a run.
type Models struct {
	Resolvers ports.TrainingSink
	Main      ports.TrainingSink
}

// ModelResult is the outcome of persisting one model.
type ModelResult struct {
	Name     string        `json:"name"`
	Records  int           `json:"records"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// OK reports whether the model was persisted.
func (r ModelResult) OK() bool { return r.Err == nil }

// Report summarizes a run. It is returned even when the run fails, with as much
// filled in as was reached.
type Report struct {
	Languages []string      `json:"languages"`
	Models    []ModelResult `json:"models"`
	Duration  time.Duration `json:"duration"`
}

// Model returns the result of the named model.
func (r *Report) Model(name string) (ModelResult, bool) {
	for _, m := range r.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelResult{}, false
}

// Orchestrator runs the two-pass training pipeline.
type Orchestrator struct {
	compiler *compiler.Compiler
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	locker   ports.Locker
	lockTTL  time.Duration
	limit    int
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Orchestrator) {
		o.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithExpansionLimit sets the per-template combination ceiling.
func WithExpansionLimit(limit int) Option {
	return func(o *Orchestrator) {
		o.limit = limit
	}
}

// WithLocker makes runs hold a lock for their whole duration.
func WithLocker(locker ports.Locker, ttl time.Duration) Option {
	return func(o *Orchestrator) {
		o.locker = locker
		o.lockTTL = ttl
	}
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(opts ...Option) *Orchestrator {
	o := &Orchestrator{lockTTL: DefaultLockTTL}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	o.compiler = compiler.New(
		compiler.WithExpansionLimit(o.limit),
		compiler.WithLifecycleHooks(o.hooks),
		compiler.WithLogger(o.logger),
	)
	return o
}

// Compiler returns the compiler the orchestrator walks with.
func (o *Orchestrator) Compiler() *compiler.Compiler {
	return o.compiler
}

// Run compiles snap for every language and then trains both models.
//
// A compile error (unsupported action type, cancellation) aborts the run
// before anything is persisted. Training failures are per model: both models
// are always attempted, and the returned error joins one *domain.ModelError
// per failed model.
func (o *Orchestrator) Run(ctx context.Context, snap *domain.Snapshot, languages []string, models Models) (report *Report, err error) {
	start := time.Now()
	report = &Report{Languages: languages}
	defer func() { report.Duration = time.Since(start) }()

	if o.locker != nil {
		unlock, err := o.locker.Lock(ctx, LockKey, o.lockTTL)
		if err != nil {
			return report, fmt.Errorf("failed to acquire training lock: %w", err)
		}
		defer func() {
			if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil {
				o.logger.Warn("Failed to release training lock", "err", uerr)
			}
		}()
	}

	counts := map[string]int{}
	counting := func(model string, emit compiler.Emit) compiler.Emit {
		return func(r domain.Record) error {
			counts[model]++
			return emit(r)
		}
	}
	resolvers := counting(domain.ModelResolvers, compiler.SinkEmitter(ctx, domain.ModelResolvers, models.Resolvers, o.hooks))
	main := counting(domain.ModelMain, compiler.SinkEmitter(ctx, domain.ModelMain, models.Main, o.hooks))

	for _, lang := range languages {
		o.logger.Info("Training resolvers", "lang", lang)
		models.Resolvers.AddLanguage(lang)
		if err := o.compiler.ResolversCorpus(ctx, snap, lang, resolvers); err != nil {
			return report, err
		}

		o.logger.Info("Training skills actions", "lang", lang)
		models.Main.AddLanguage(lang)
		if err := o.compiler.MainCorpus(ctx, snap, lang, main); err != nil {
			return report, err
		}
	}

	var errs []error
	for _, m := range []struct {
		name string
		sink ports.TrainingSink
	}{
		{domain.ModelResolvers, models.Resolvers},
		{domain.ModelMain, models.Main},
	} {
		result := o.train(ctx, m.name, m.sink)
		result.Records = counts[m.name]
		report.Models = append(report.Models, result)
		if result.Err != nil {
			errs = append(errs, &domain.ModelError{Model: m.name, Err: result.Err})
		}
	}
	return report, errors.Join(errs...)
}

func (o *Orchestrator) train(ctx context.Context, name string, sink ports.TrainingSink) ModelResult {
	start := time.Now()
	err := sink.Train(ctx)
	result := ModelResult{Name: name, Duration: time.Since(start), Err: err}

	if err != nil {
		o.logger.Error("Model training failed", "model", name, "err", err)
	} else {
		o.logger.Info("Model saved", "model", name, "duration", result.Duration)
	}
	if o.hooks.OnModelTrained != nil {
		o.hooks.OnModelTrained(ctx, &domain.ModelEvent{Model: name, Duration: result.Duration, Err: err})
	}
	return result
}
