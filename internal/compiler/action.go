package compiler

import (
	"context"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/pattern"
)

// ActionInput locates an action in the hierarchy.
type ActionInput struct {
	Lang       string
	DomainName string
	SkillName  string
	ActionName string
	Action     domain.Action
	// Variables are the document level variables; the action's own table overrides them.
	Variables domain.Variables
}

// CompileAction produces the records of one action in this order: the domain
// assignment, entity slot bindings, expanded documents, then bound answers for
// dialog actions. An unsupported type fails before anything is produced.
func (c *Compiler) CompileAction(ctx context.Context, in ActionInput) ([]domain.Record, error) {
	action := in.Action
	if !action.Type.Supported() {
		return nil, &domain.UnsupportedActionTypeError{
			Skill:  in.SkillName,
			Action: in.ActionName,
			Type:   action.Type,
		}
	}

	intent := domain.Intent(in.SkillName, in.ActionName)
	records := []domain.Record{domain.NewDomainAssignment(in.Lang, intent, in.DomainName)}

	for _, slot := range action.Slots {
		switch slot.Item.Kind() {
		case domain.ItemEntity:
			records = append(records, domain.NewSlotBinding(intent, slot.Key(), true, in.Lang, slot.Questions))
		case domain.ItemOther:
			// Only entity items are bound for now.
			c.logger.Debug("Slot item type not bound", "intent", intent, "slot", slot.Name, "item_type", slot.Item.Type)
			if c.hooks.OnSlotIgnored != nil {
				c.hooks.OnSlotIgnored(ctx, &domain.SlotEvent{
					Lang:     in.Lang,
					Intent:   intent,
					Slot:     slot.Name,
					ItemType: slot.Item.Type,
				})
			}
		}
	}

	for _, utterance := range action.UtteranceSamples {
		for _, alt := range c.expand(ctx, in.Lang, intent, utterance) {
			records = append(records, domain.NewDocument(in.Lang, alt, intent))
		}
	}

	if action.Type == domain.ActionDialog {
		binder := pattern.NewBinder(in.Variables.Merge(action.Variables))
		for _, answer := range action.Answers {
			records = append(records, domain.NewAnswer(in.Lang, intent, binder.Bind(answer)))
		}
	}

	return records, nil
}
