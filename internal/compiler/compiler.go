// Package compiler turns the configuration snapshot into a flat, ordered stream
// of training records. It never talks to a training engine directly: records are
// handed to an Emit callback, and Apply folds them onto a ports.TrainingSink.
package compiler

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/pattern"
)

// Emit receives records in emission order. Returning an error stops the walk.
type Emit func(domain.Record) error

// Compiler compiles actions, resolvers and entities into records.
type Compiler struct {
	expander *pattern.Expander
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Compiler.
type Option func(*Compiler)

// WithExpansionLimit sets the per-template combination ceiling.
func WithExpansionLimit(limit int) Option {
	return func(c *Compiler) {
		c.expander = pattern.NewExpander(limit)
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Compiler) {
		c.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New creates a compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		expander: pattern.NewExpander(pattern.DefaultLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Collect runs walk and gathers everything it emits.
// On error, the records emitted before the failure are returned with it.
func Collect(walk func(Emit) error) ([]domain.Record, error) {
	var records []domain.Record
	err := walk(func(r domain.Record) error {
		records = append(records, r)
		return nil
	})
	return records, err
}

// expand runs the expander and reports truncation as a warning.
func (c *Compiler) expand(ctx context.Context, lang, intent, template string) []string {
	alternatives, err := c.expander.Expand(template)
	if err != nil {
		var limitErr *domain.ExpansionLimitError
		if errors.As(err, &limitErr) {
			c.logger.Warn("Utterance expansion truncated",
				"lang", lang,
				"intent", intent,
				"combinations", limitErr.Combinations,
				"limit", limitErr.Limit,
			)
			if c.hooks.OnExpansionLimit != nil {
				c.hooks.OnExpansionLimit(ctx, &domain.ExpansionEvent{
					Lang:         lang,
					Intent:       intent,
					Template:     template,
					Combinations: limitErr.Combinations,
					Limit:        limitErr.Limit,
				})
			}
		}
	}
	return alternatives
}

func emitAll(emit Emit, records []domain.Record) error {
	for _, r := range records {
		if err := emit(r); err != nil {
			return err
		}
	}
	return nil
}
