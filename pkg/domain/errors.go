package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedActionType is returned when an action declares a type outside of
// the supported set. It is a configuration error and aborts the whole run.
var ErrUnsupportedActionType = errors.New("unsupported action type")

// ErrExpansionLimit is returned when an utterance template expands to more
// combinations than the configured ceiling. The expansion is truncated.
var ErrExpansionLimit = errors.New("expansion limit exceeded")

// ErrModelNotFound is returned when a model artifact cannot be found in the store.
var ErrModelNotFound = errors.New("model not found")

// UnsupportedActionTypeError carries the location of an invalid action.
type UnsupportedActionTypeError struct {
	Skill  string
	Action string
	Type   ActionType
}

func (e *UnsupportedActionTypeError) Error() string {
	return fmt.Sprintf("action %q of skill %q: this action type isn't supported: %q", e.Action, e.Skill, string(e.Type))
}

func (e *UnsupportedActionTypeError) Unwrap() error {
	return ErrUnsupportedActionType
}

// ExpansionLimitError reports a template whose combination count went past the limit.
type ExpansionLimitError struct {
	Template     string
	Combinations int
	Limit        int
}

func (e *ExpansionLimitError) Error() string {
	if e.Combinations >= math.MaxInt32 {
		return fmt.Sprintf("template %q expands to more than %d combinations, truncated to %d", e.Template, math.MaxInt32-1, e.Limit)
	}
	return fmt.Sprintf("template %q expands to %d combinations, truncated to %d", e.Template, e.Combinations, e.Limit)
}

func (e *ExpansionLimitError) Unwrap() error {
	return ErrExpansionLimit
}

// ModelError identifies which model of a training run failed.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("failed to save %s model: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}
