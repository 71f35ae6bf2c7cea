package domain

import "sort"

// Domain groups skills under a topic. Its Name is what intents are assigned to.
type Domain struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// Skill is a capability bundle with per-language NLU data.
type Skill struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Path string `json:"path"`
	// NLU holds the NLU document of each language the skill supports.
	// A language without an entry is simply not trained for this skill.
	NLU map[string]*NLUDocument `json:"nlu,omitempty"`
}

// Document returns the NLU document for lang, if the skill has one.
func (s Skill) Document(lang string) (*NLUDocument, bool) {
	doc, ok := s.NLU[lang]
	if !ok || doc == nil {
		return nil, false
	}
	return doc, true
}

// Languages lists the languages the skill has NLU data for, sorted.
func (s Skill) Languages() []string {
	langs := make([]string, 0, len(s.NLU))
	for lang, doc := range s.NLU {
		if doc != nil {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}

// NLUDocument is the content of a skill's nlu/<lang> file.
type NLUDocument struct {
	Actions map[string]Action `json:"actions"`
	// Variables apply to every dialog action of the document.
	Variables Variables           `json:"variables,omitempty"`
	Resolvers map[string]Resolver `json:"resolvers,omitempty"`
}

// ActionNames returns the action names sorted by name. Corpora follow this
// order, not the declaration order of the NLU file.
func (d *NLUDocument) ActionNames() []string {
	return sortedKeys(d.Actions)
}

// ResolverNames returns the resolver names sorted by name, not in declaration order.
func (d *NLUDocument) ResolverNames() []string {
	return sortedKeys(d.Resolvers)
}

// Snapshot is the immutable configuration view handed to the compiler.
// It is taken once, before any record is produced.
type Snapshot struct {
	// Domains are kept in walk order.
	Domains []Domain `json:"domains"`
	// GlobalResolvers and GlobalEntities are keyed by language.
	GlobalResolvers map[string][]Resolver `json:"global_resolvers,omitempty"`
	GlobalEntities  map[string][]Entity   `json:"global_entities,omitempty"`
}

// Languages returns every language found anywhere in the snapshot, sorted.
func (s *Snapshot) Languages() []string {
	seen := make(map[string]struct{})
	for _, d := range s.Domains {
		for _, sk := range d.Skills {
			for _, lang := range sk.Languages() {
				seen[lang] = struct{}{}
			}
		}
	}
	for lang := range s.GlobalResolvers {
		seen[lang] = struct{}{}
	}
	for lang := range s.GlobalEntities {
		seen[lang] = struct{}{}
	}
	return sortedKeys(seen)
}

// Intents lists every action intent of the snapshot for lang, in walk order.
func (s *Snapshot) Intents(lang string) []string {
	var intents []string
	for _, d := range s.Domains {
		for _, sk := range d.Skills {
			doc, ok := sk.Document(lang)
			if !ok {
				continue
			}
			for _, name := range doc.ActionNames() {
				intents = append(intents, Intent(sk.Name, name))
			}
		}
	}
	return intents
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
