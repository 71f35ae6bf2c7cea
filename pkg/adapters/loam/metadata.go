package loam

// DocumentMetadata is the union of the keys used by the project tree documents.
// It uses "mapstructure" tags to match the JSON/YAML keys (and Markdown frontmatter).
type DocumentMetadata struct {
	// Name is the display name of a domain, skill or resolver.
	Name string `json:"name,omitempty" mapstructure:"name,omitempty"`

	// NLU documents
	Actions   map[string]any `json:"actions,omitempty" mapstructure:"actions,omitempty"`
	Variables map[string]any `json:"variables,omitempty" mapstructure:"variables,omitempty"`
	Resolvers map[string]any `json:"resolvers,omitempty" mapstructure:"resolvers,omitempty"`

	// Resolver documents
	Intents map[string]any `json:"intents,omitempty" mapstructure:"intents,omitempty"`

	// Entity documents
	Options map[string]any `json:"options,omitempty" mapstructure:"options,omitempty"`
}

// fields returns the metadata as the loosely typed map the layout decoder expects.
// Absent keys are left out.
func (m DocumentMetadata) fields() map[string]any {
	out := make(map[string]any)
	if m.Name != "" {
		out["name"] = m.Name
	}
	set := func(key string, v map[string]any) {
		if v != nil {
			out[key] = v
		}
	}
	set("actions", m.Actions)
	set("variables", m.Variables)
	set("resolvers", m.Resolvers)
	set("intents", m.Intents)
	set("options", m.Options)
	return out
}
