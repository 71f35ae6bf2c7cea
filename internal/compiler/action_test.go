package compiler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/glossa/internal/compiler"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloInput() compiler.ActionInput {
	return compiler.ActionInput{
		Lang:       "en",
		DomainName: "smalltalk",
		SkillName:  "greeting",
		ActionName: "hello",
		Action: domain.Action{
			Type:             domain.ActionDialog,
			UtteranceSamples: []string{"Hi {there|}"},
			Answers:          []string{"Hello %user%!"},
			Variables:        domain.Variables{"user": {Items: []string{"friend"}}},
		},
	}
}

func TestCompileAction_Dialog(t *testing.T) {
	records, err := compiler.New().CompileAction(context.Background(), helloInput())
	require.NoError(t, err)

	assert.Equal(t, []domain.Record{
		domain.NewDomainAssignment("en", "greeting.hello", "smalltalk"),
		domain.NewDocument("en", "Hi there", "greeting.hello"),
		domain.NewDocument("en", "Hi", "greeting.hello"),
		domain.NewAnswer("en", "greeting.hello", "Hello friend!"),
	}, records)
}

func TestCompileAction_UnsupportedType(t *testing.T) {
	in := helloInput()
	in.Action.Type = "reminder"

	records, err := compiler.New().CompileAction(context.Background(), in)
	require.Error(t, err)
	assert.Empty(t, records, "nothing may be produced for an invalid action")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedActionType))

	var typeErr *domain.UnsupportedActionTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "greeting", typeErr.Skill)
	assert.Equal(t, "hello", typeErr.Action)

	t.Run("Missing type", func(t *testing.T) {
		in.Action.Type = ""
		_, err := compiler.New().CompileAction(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnsupportedActionType)
	})
}

func TestCompileAction_LogicIgnoresAnswers(t *testing.T) {
	in := helloInput()
	in.Action.Type = domain.ActionLogic

	records, err := compiler.New().CompileAction(context.Background(), in)
	require.NoError(t, err)
	for _, r := range records {
		assert.NotEqual(t, domain.RecordAnswer, r.Kind)
	}
	assert.Len(t, records, 3)
}

func TestCompileAction_EmptyData(t *testing.T) {
	records, err := compiler.New().CompileAction(context.Background(), compiler.ActionInput{
		Lang: "en", DomainName: "d", SkillName: "s", ActionName: "a",
		Action: domain.Action{Type: domain.ActionDialog},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{domain.NewDomainAssignment("en", "s.a", "d")}, records)
}

func TestCompileAction_Slots(t *testing.T) {
	var ignored []*domain.SlotEvent
	c := compiler.New(compiler.WithLifecycleHooks(domain.LifecycleHooks{
		OnSlotIgnored: func(_ context.Context, e *domain.SlotEvent) { ignored = append(ignored, e) },
	}))

	in := helloInput()
	in.Action.Slots = []domain.Slot{
		{Name: "players", Item: domain.Item{Type: "entity", Name: "number"}, Questions: []string{"How many players?"}},
		{Name: "ready", Item: domain.Item{Type: "boolean", Name: "yes_no"}, Questions: []string{"Ready?"}},
	}

	records, err := c.CompileAction(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, domain.RecordDomain, records[0].Kind, "assignment comes first")
	assert.Equal(t, domain.NewSlotBinding("greeting.hello", "players#number", true, "en", []string{"How many players?"}), records[1])
	assert.Equal(t, domain.RecordDocument, records[2].Kind)

	require.Len(t, ignored, 1)
	assert.Equal(t, "ready", ignored[0].Slot)
	assert.Equal(t, "boolean", ignored[0].ItemType)
}

func TestCompileAction_Variables(t *testing.T) {
	in := helloInput()
	in.Action.Answers = []string{"%greet% %user%, I am %bot%. %unknown%"}
	in.Variables = domain.Variables{
		"user":  {Items: []string{"stranger"}},
		"bot":   {Items: []string{"Glossa"}},
		"greet": {Items: []string{"Hey", "Hello"}, List: true},
	}

	records, err := compiler.New().CompileAction(context.Background(), in)
	require.NoError(t, err)

	answers := filter(records, domain.RecordAnswer)
	require.Len(t, answers, 1)
	assert.Equal(t, "Hey,Hello friend, I am Glossa. %unknown%", answers[0].Text, "action variables override document variables")
}

func TestCompileAction_ExpansionLimit(t *testing.T) {
	var events []*domain.ExpansionEvent
	c := compiler.New(
		compiler.WithExpansionLimit(2),
		compiler.WithLifecycleHooks(domain.LifecycleHooks{
			OnExpansionLimit: func(_ context.Context, e *domain.ExpansionEvent) { events = append(events, e) },
		}),
	)

	in := helloInput()
	in.Action.UtteranceSamples = []string{"{a|b|c}"}

	records, err := c.CompileAction(context.Background(), in)
	require.NoError(t, err, "truncation is a warning")
	assert.Len(t, filter(records, domain.RecordDocument), 2)

	require.Len(t, events, 1)
	assert.Equal(t, "greeting.hello", events[0].Intent)
	assert.Equal(t, 3, events[0].Combinations)
}

func filter(records []domain.Record, kind domain.RecordKind) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
