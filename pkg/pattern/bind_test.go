package pattern_test

import (
	"testing"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/aretw0/glossa/pkg/pattern"
	"github.com/stretchr/testify/assert"
)

func TestBind(t *testing.T) {
	vars := domain.Variables{
		"name":   {Items: []string{"Leon"}},
		"colors": {Items: []string{"red", "blue"}, List: true},
	}

	tests := []struct {
		name string
		text string
		vars domain.Variables
		want string
	}{
		{"Substitutes", "Hello %name%!", vars, "Hello Leon!"},
		{"Every occurrence", "%name% and %name%", vars, "Leon and Leon"},
		{"Unknown placeholder is kept", "Hi %x%", vars, "Hi %x%"},
		{"Empty table is identity", "Hi %x%", domain.Variables{}, "Hi %x%"},
		{"Nil table is identity", "Hi %name%", nil, "Hi %name%"},
		{"List is serialized", "Pick %colors%", vars, "Pick red,blue"},
		{"No placeholders", "Plain answer", vars, "Plain answer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pattern.Bind(tt.text, tt.vars))
			assert.Equal(t, tt.want, pattern.NewBinder(tt.vars).Bind(tt.text))
		})
	}
}

func TestTable(t *testing.T) {
	table := pattern.Table(domain.Variables{"user": {Items: []string{"friend"}}})
	assert.Equal(t, map[string]string{"%user%": "friend"}, table)
	assert.Nil(t, pattern.Table(nil))
}
