package cli

import (
	"context"
	"time"
)

// settleDelay lets an editor finish writing a batch of files before retraining.
var settleDelay = 100 * time.Millisecond

// RunWatch trains once and then retrains on every project change until ctx is done.
// Failed runs are logged and the watcher keeps going: the next change may fix them.
func RunWatch(ctx context.Context, env *Env, out Output) error {
	events, err := env.Trainer.Watch(ctx)
	if err != nil {
		return err
	}

	env.Logger.Info("Starting Watcher", "project", env.Trainer.Name)
	printSystemMessage(out.W, "Watching '%s' for changes.", env.Trainer.Name)

	train := func() {
		if err := RunTrain(ctx, env, out); err != nil {
			if isInterrupted(err) {
				return
			}
			env.Logger.Error("Training failed, waiting for changes", "err", err)
		}
		printSystemMessage(out.W, "Waiting for changes...")
	}
	train()

	for {
		select {
		case <-ctx.Done():
			env.Logger.Info("Stopping watcher")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			printSystemMessage(out.W, "Change detected in '%s'.", event)
			if !settle(ctx, events) {
				return nil
			}
			train()
		}
	}
}

// settle swallows the events that arrive within settleDelay of each other.
// It returns false when ctx is done or events is closed.
func settle(ctx context.Context, events <-chan string) bool {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case _, ok := <-events:
			if !ok {
				return false
			}
			timer.Reset(settleDelay)
		case <-timer.C:
			return true
		}
	}
}
