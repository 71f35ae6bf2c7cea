package domain

// SystemDomain is the domain global resolver intents are assigned to.
const SystemDomain = "system"

// Resolver groups utterances that resolve to a value (e.g. affirmation / denial).
type Resolver struct {
	Name    string                    `json:"name" mapstructure:"name"`
	Intents map[string]ResolverIntent `json:"intents" mapstructure:"intents"`
}

// IntentKeys returns the resolver intent keys in sorted order.
func (r Resolver) IntentKeys() []string {
	return sortedKeys(r.Intents)
}

// ResolverIntent is one resolvable value and the utterances that express it.
type ResolverIntent struct {
	UtteranceSamples []string `json:"utterance_samples" mapstructure:"utterance_samples"`
	Value            any      `json:"value,omitempty" mapstructure:"value"`
}

// GlobalResolverIntent builds the intent key of a global resolver value.
func GlobalResolverIntent(resolver, key string) string {
	return "resolver.global." + resolver + "." + key
}

// SkillResolverIntent builds the intent key of a skill resolver value.
func SkillResolverIntent(skill, resolver, key string) string {
	return "resolver." + skill + "." + resolver + "." + key
}

// Entity is a global enum entity: named options with synonyms.
type Entity struct {
	Name    string                  `json:"name"`
	Options map[string]EntityOption `json:"options" mapstructure:"options"`
}

// OptionNames returns the option names in sorted order.
func (e Entity) OptionNames() []string {
	return sortedKeys(e.Options)
}

// EntityOption lists the surface forms of one entity value.
type EntityOption struct {
	Synonyms []string `json:"synonyms" mapstructure:"synonyms"`
}
