package pattern

import (
	"strings"

	"github.com/aretw0/glossa/pkg/domain"
)

// Binder substitutes %name% placeholders with variable values.
type Binder struct {
	replacer *strings.Replacer
}

// NewBinder builds the substitution table for vars.
func NewBinder(vars domain.Variables) *Binder {
	b := &Binder{}
	if len(vars) == 0 {
		return b
	}
	keys := vars.Keys()
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, Placeholder(k), vars[k].String())
	}
	b.replacer = strings.NewReplacer(pairs...)
	return b
}

// Bind replaces every known placeholder in text. Unknown placeholders are kept.
// With an empty table the text is returned without being scanned.
func (b *Binder) Bind(text string) string {
	if b.replacer == nil {
		return text
	}
	return b.replacer.Replace(text)
}

// Bind is a convenience for NewBinder(vars).Bind(text).
func Bind(text string, vars domain.Variables) string {
	if len(vars) == 0 {
		return text
	}
	return NewBinder(vars).Bind(text)
}

// Placeholder wraps a variable name the way it appears in templates.
func Placeholder(name string) string {
	return "%" + name + "%"
}

// Table returns the substitution table keyed by placeholder.
func Table(vars domain.Variables) map[string]string {
	if len(vars) == 0 {
		return nil
	}
	table := make(map[string]string, len(vars))
	for name, value := range vars {
		table[Placeholder(name)] = value.String()
	}
	return table
}
