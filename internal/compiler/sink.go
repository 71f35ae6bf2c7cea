package compiler

import (
	"context"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/ports"
)

// Apply forwards one record to the matching sink call.
func Apply(sink ports.TrainingSink, r domain.Record) {
	switch r.Kind {
	case domain.RecordDomain:
		sink.AssignDomain(r.Lang, r.Intent, r.Domain)
	case domain.RecordDocument:
		sink.AddDocument(r.Lang, r.Text, r.Intent)
	case domain.RecordAnswer:
		sink.AddAnswer(r.Lang, r.Intent, r.Text)
	case domain.RecordSlot:
		sink.AddSlot(r.Intent, r.SlotKey, r.Required, map[string][]string{r.Lang: r.Prompts})
	case domain.RecordEntity:
		sink.AddEntity(r.Lang, r.Entity, r.Option, r.Synonyms)
	}
}

// SinkEmitter returns an Emit that folds records onto sink and reports each
// one to the OnRecord hook under the given model name.
func SinkEmitter(ctx context.Context, model string, sink ports.TrainingSink, hooks domain.LifecycleHooks) Emit {
	return func(r domain.Record) error {
		Apply(sink, r)
		if hooks.OnRecord != nil {
			hooks.OnRecord(ctx, &domain.RecordEvent{Model: model, Record: r})
		}
		return nil
	}
}
