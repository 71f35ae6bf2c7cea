package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ActionType defines how an action is trained.
type ActionType string

const (
	// ActionDialog produces answer text in addition to utterances.
	ActionDialog ActionType = "dialog"
	// ActionLogic is handled by skill code; only utterances are trained.
	ActionLogic ActionType = "logic"
)

// Supported reports whether the type belongs to the closed set of action types.
func (t ActionType) Supported() bool {
	switch t {
	case ActionDialog, ActionLogic:
		return true
	default:
		return false
	}
}

// Action is one trainable behavior of a skill.
type Action struct {
	Type             ActionType `json:"type" mapstructure:"type"`
	UtteranceSamples []string   `json:"utterance_samples,omitempty" mapstructure:"utterance_samples"`
	Slots            []Slot     `json:"slots,omitempty" mapstructure:"slots"`
	// Answers are only meaningful for dialog actions.
	Answers   []string  `json:"answers,omitempty" mapstructure:"answers"`
	Variables Variables `json:"variables,omitempty" mapstructure:"-"`
}

// ItemKind is the closed set of slot item variants the compiler dispatches on.
type ItemKind int

const (
	// ItemOther covers every item type the compiler does not bind.
	ItemOther ItemKind = iota
	// ItemEntity is an entity-backed slot item.
	ItemEntity
)

func (k ItemKind) String() string {
	if k == ItemEntity {
		return "entity"
	}
	return "other"
}

// Item is the descriptor a slot refers to.
type Item struct {
	Type string `json:"type" mapstructure:"type"`
	Name string `json:"name" mapstructure:"name"`
}

// Kind classifies the item.
func (i Item) Kind() ItemKind {
	if i.Type == "entity" {
		return ItemEntity
	}
	return ItemOther
}

// Slot is a piece of information an intent needs before it can be fulfilled.
type Slot struct {
	Name string `json:"name" mapstructure:"name"`
	Item Item   `json:"item" mapstructure:"item"`
	// Questions are the prompts used to ask for the slot, in the document language.
	Questions []string `json:"questions,omitempty" mapstructure:"questions"`
}

// Key is the slot identifier registered with the engine ("<slot>#<item>").
func (s Slot) Key() string {
	return s.Name + "#" + s.Item.Name
}

// Intent builds the engine key of an action.
func Intent(skillName, actionName string) string {
	return skillName + "." + actionName
}

// Value is a variable value: either a single string or a list of alternatives.
type Value struct {
	Items []string `json:"items"`
	List  bool     `json:"list,omitempty"`
}

// String returns the serialized form used for substitution.
// Lists are not resolved here; the engine picks an entry at inference time.
func (v Value) String() string {
	if !v.List {
		if len(v.Items) == 0 {
			return ""
		}
		return v.Items[0]
	}
	return strings.Join(v.Items, ",")
}

// Variables maps variable names (without the surrounding %) to values.
type Variables map[string]Value

// Keys returns the variable names in sorted order.
func (v Variables) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a copy of v with every entry of override applied on top.
func (v Variables) Merge(override Variables) Variables {
	if len(v) == 0 && len(override) == 0 {
		return nil
	}
	out := make(Variables, len(v)+len(override))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range override {
		out[k] = val
	}
	return out
}

// ParseVariables converts a loosely typed variable table (as decoded from JSON
// or YAML) into Variables. Scalars are formatted with %v.
func ParseVariables(raw map[string]any) (Variables, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	vars := make(Variables, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			vars[name] = Value{Items: []string{v}}
		case []string:
			vars[name] = Value{Items: append([]string(nil), v...), List: true}
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, fmt.Sprintf("%v", item))
			}
			vars[name] = Value{Items: items, List: true}
		case map[string]any, map[any]any:
			return nil, fmt.Errorf("variable %q: expected string or list, got %T", name, value)
		case nil:
			vars[name] = Value{Items: []string{""}}
		default:
			vars[name] = Value{Items: []string{fmt.Sprintf("%v", v)}}
		}
	}
	return vars, nil
}
