package domain

import (
	"context"
	"time"
)

// RecordEvent is fired for every record forwarded to a sink.
type RecordEvent struct {
	Model  string
	Record Record
}

// SkillEvent is fired when a skill has no NLU document for a language.
type SkillEvent struct {
	Domain string
	Skill  string
	Lang   string
}

// ExpansionEvent is fired when a template is truncated at the expansion limit.
type ExpansionEvent struct {
	Lang         string
	Intent       string
	Template     string
	Combinations int
	Limit        int
}

// SlotEvent is fired when a slot refers to an item type that is not bound.
type SlotEvent struct {
	Lang     string
	Intent   string
	Slot     string
	ItemType string
}

// ModelEvent is fired after a sink was trained and persisted (or failed to).
type ModelEvent struct {
	Model    string
	Duration time.Duration
	Err      error
}

// LifecycleHooks defines callbacks for compiler observability.
// Every hook is optional and called synchronously.
type LifecycleHooks struct {
	OnRecord         func(context.Context, *RecordEvent)
	OnSkillSkipped   func(context.Context, *SkillEvent)
	OnExpansionLimit func(context.Context, *ExpansionEvent)
	OnSlotIgnored    func(context.Context, *SlotEvent)
	OnModelTrained   func(context.Context, *ModelEvent)
}

// Combine returns hooks that call h first and then other.
func (h LifecycleHooks) Combine(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRecord:         chain(h.OnRecord, other.OnRecord),
		OnSkillSkipped:   chain(h.OnSkillSkipped, other.OnSkillSkipped),
		OnExpansionLimit: chain(h.OnExpansionLimit, other.OnExpansionLimit),
		OnSlotIgnored:    chain(h.OnSlotIgnored, other.OnSlotIgnored),
		OnModelTrained:   chain(h.OnModelTrained, other.OnModelTrained),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
