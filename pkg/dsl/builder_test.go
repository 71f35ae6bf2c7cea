package dsl_test

import (
	"context"
	"testing"

	"github.com/aretw0/glossa"
	"github.com/aretw0/glossa/pkg/adapters/memory"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/dsl"
	"github.com/aretw0/glossa/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds the same project as tests.Fixture.
func fixture() *dsl.Builder {
	b := dsl.New()
	b.Domain("smalltalk").Skill("greeting").Lang("en").
		Dialog("hello", "Hi {there|}").
		Answers("Hello %user%!").
		Variable("user", "friend")

	b.GlobalResolver("en", "affirmation_denial").
		Intent("affirmation", true, "{Yes|Yep}").
		Intent("denial", false, "{No|Nope}")

	b.GlobalEntity("en", "color").
		Option("red", "red", "crimson").
		Option("blue", "blue")
	return b
}

func TestBuilder_LoaderContract(t *testing.T) {
	tests.ConfigLoaderContractTest(t, fixture().Build())
}

func TestBuilder_CompilesLikeFiles(t *testing.T) {
	ctx := context.Background()

	fromDSL, err := glossa.New("", glossa.WithLoader(fixture().Build()))
	require.NoError(t, err)
	fromFiles, err := glossa.New("", glossa.WithLoader(memory.NewLoader(tests.Fixture)))
	require.NoError(t, err)

	want, err := fromFiles.Compile(ctx, "en")
	require.NoError(t, err)
	got, err := fromDSL.Compile(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want, err = fromFiles.CompileResolvers(ctx, "en")
	require.NoError(t, err)
	got, err = fromDSL.CompileResolvers(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBuilder_Chaining(t *testing.T) {
	b := dsl.New()
	b.Domain("home").Name("Home Automation").Skill("lights").Name("light").Lang("en").
		Variable("rooms", "kitchen", "hall").
		Logic("switch_on", "turn on the {lamp|light}").
		Slot("room", "entity", "room", "Which room?").
		Dialog("status", "are the lights on").
		Answers("They are on")

	doc := b.Domain("home").Skill("lights").Lang("en")
	doc.Resolver("yes_no").Intent("yes", true, "yes")

	snap := b.Snapshot()
	require.Len(t, snap.Domains, 1)
	d := snap.Domains[0]
	assert.Equal(t, "Home Automation", d.Name)
	require.Len(t, d.Skills, 1)

	skill := d.Skills[0]
	assert.Equal(t, "light", skill.Name)
	assert.Equal(t, "skills/home/lights", skill.Path)

	nlu, ok := skill.Document("en")
	require.True(t, ok)
	assert.Equal(t, []string{"status", "switch_on"}, nlu.ActionNames())
	assert.Equal(t, domain.Value{Items: []string{"kitchen", "hall"}, List: true}, nlu.Variables["rooms"])

	on := nlu.Actions["switch_on"]
	assert.Equal(t, domain.ActionLogic, on.Type)
	require.Len(t, on.Slots, 1)
	assert.Equal(t, domain.ItemEntity, on.Slots[0].Item.Kind())
	assert.Equal(t, []string{"They are on"}, nlu.Actions["status"].Answers)

	require.Contains(t, nlu.Resolvers, "yes_no")
	assert.Equal(t, true, nlu.Resolvers["yes_no"].Intents["yes"].Value)
	assert.Equal(t, []string{"light.status", "light.switch_on"}, snap.Intents("en"))
}

func TestBuilder_UnsupportedActionFails(t *testing.T) {
	b := dsl.New()
	b.Domain("d").Skill("s").Lang("en").Action("x", domain.ActionType("webhook"), "hi")

	trainer, err := glossa.New("", glossa.WithLoader(b.Build()))
	require.NoError(t, err)
	_, err = trainer.Compile(context.Background(), "en")
	assert.ErrorIs(t, err, domain.ErrUnsupportedActionType)
}
