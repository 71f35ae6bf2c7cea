package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/glossa/internal/logging"
	"github.com/aretw0/glossa/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger. It always writes to Stderr
// so Stdout stays free for corpus output.
func createLogger(level string, jsonLogs bool) *slog.Logger {
	if jsonLogs {
		return logging.NewJSON(os.Stderr, logging.ParseLevel(level))
	}
	return logging.New(logging.ParseLevel(level))
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSkillSkipped: func(ctx context.Context, e *domain.SkillEvent) {
			logger.Debug("Skill skipped", "domain", e.Domain, "skill", e.Skill, "lang", e.Lang)
		},
		OnModelTrained: func(ctx context.Context, e *domain.ModelEvent) {
			if e.Err != nil {
				logger.Debug("Model Trained (Error)", "model", e.Model, "duration", e.Duration, "err", e.Err)
			} else {
				logger.Debug("Model Trained (Success)", "model", e.Model, "duration", e.Duration)
			}
		},
	}
}

func isInterrupted(err error) bool {
	return err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, io.EOF))
}
