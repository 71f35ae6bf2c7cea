package dsl

import "github.com/aretw0/glossa/pkg/domain"

// DomainBuilder provides a fluent API for configuring a domain.
type DomainBuilder struct {
	domain domain.Domain
	skills map[string]*SkillBuilder
}

// Name sets the name intents are assigned to.
func (d *DomainBuilder) Name(name string) *DomainBuilder {
	d.domain.Name = name
	return d
}

// Skill returns the builder of the skill key. The skill name defaults to its key.
func (d *DomainBuilder) Skill(key string) *SkillBuilder {
	if s, ok := d.skills[key]; ok {
		return s
	}
	s := &SkillBuilder{
		skill: domain.Skill{Key: key, Name: key, Path: "skills/" + d.domain.Key + "/" + key},
		docs:  make(map[string]*DocumentBuilder),
	}
	d.skills[key] = s
	return s
}

func (d *DomainBuilder) build() domain.Domain {
	out := d.domain
	out.Skills = nil
	for _, key := range sortedKeys(d.skills) {
		out.Skills = append(out.Skills, d.skills[key].build())
	}
	return out
}

// SkillBuilder configures a skill.
type SkillBuilder struct {
	skill domain.Skill
	docs  map[string]*DocumentBuilder
}

// Name sets the skill name used in intents.
func (s *SkillBuilder) Name(name string) *SkillBuilder {
	s.skill.Name = name
	return s
}

// Lang returns the NLU document of lang.
func (s *SkillBuilder) Lang(lang string) *DocumentBuilder {
	if doc, ok := s.docs[lang]; ok {
		return doc
	}
	doc := &DocumentBuilder{doc: &domain.NLUDocument{Actions: make(map[string]domain.Action)}}
	s.docs[lang] = doc
	return doc
}

func (s *SkillBuilder) build() domain.Skill {
	out := s.skill
	out.NLU = make(map[string]*domain.NLUDocument, len(s.docs))
	for lang, doc := range s.docs {
		out.NLU[lang] = doc.doc
	}
	return out
}

// DocumentBuilder configures the NLU document of one language.
type DocumentBuilder struct {
	doc *domain.NLUDocument
}

// Variable sets a document variable. A single value is a string, more than one a list.
func (d *DocumentBuilder) Variable(name string, values ...string) *DocumentBuilder {
	if d.doc.Variables == nil {
		d.doc.Variables = make(domain.Variables)
	}
	d.doc.Variables[name] = value(values)
	return d
}

// Dialog adds a dialog action with its utterance templates.
func (d *DocumentBuilder) Dialog(name string, utterances ...string) *ActionBuilder {
	return d.action(name, domain.ActionDialog, utterances)
}

// Logic adds a logic action with its utterance templates.
func (d *DocumentBuilder) Logic(name string, utterances ...string) *ActionBuilder {
	return d.action(name, domain.ActionLogic, utterances)
}

// Action adds an action of any type. Unsupported types are kept so that
// compiling them fails the way a file project would.
func (d *DocumentBuilder) Action(name string, actionType domain.ActionType, utterances ...string) *ActionBuilder {
	return d.action(name, actionType, utterances)
}

func (d *DocumentBuilder) action(name string, actionType domain.ActionType, utterances []string) *ActionBuilder {
	d.doc.Actions[name] = domain.Action{Type: actionType, UtteranceSamples: utterances}
	return &ActionBuilder{doc: d, name: name}
}

// Resolver returns the builder of a skill resolver.
func (d *DocumentBuilder) Resolver(name string) *ResolverBuilder {
	if d.doc.Resolvers == nil {
		d.doc.Resolvers = make(map[string]domain.Resolver)
	}
	r := newResolverBuilder(name)
	r.commit = func(res domain.Resolver) { d.doc.Resolvers[name] = res }
	r.commit(r.resolver)
	return r
}

// ActionBuilder configures one action. Its Dialog and Logic methods chain to
// the next action of the same document.
type ActionBuilder struct {
	doc  *DocumentBuilder
	name string
}

func (a *ActionBuilder) update(fn func(*domain.Action)) *ActionBuilder {
	action := a.doc.doc.Actions[a.name]
	fn(&action)
	a.doc.doc.Actions[a.name] = action
	return a
}

// Answers appends answer templates.
func (a *ActionBuilder) Answers(answers ...string) *ActionBuilder {
	return a.update(func(act *domain.Action) {
		act.Answers = append(act.Answers, answers...)
	})
}

// Variable sets an action variable, which overrides a document variable of the same name.
func (a *ActionBuilder) Variable(name string, values ...string) *ActionBuilder {
	return a.update(func(act *domain.Action) {
		if act.Variables == nil {
			act.Variables = make(domain.Variables)
		}
		act.Variables[name] = value(values)
	})
}

// Slot adds a slot whose item is of itemType (only "entity" items are trained).
func (a *ActionBuilder) Slot(name, itemType, itemName string, questions ...string) *ActionBuilder {
	return a.update(func(act *domain.Action) {
		act.Slots = append(act.Slots, domain.Slot{
			Name:      name,
			Item:      domain.Item{Type: itemType, Name: itemName},
			Questions: questions,
		})
	})
}

// Dialog adds the next dialog action of the document.
func (a *ActionBuilder) Dialog(name string, utterances ...string) *ActionBuilder {
	return a.doc.Dialog(name, utterances...)
}

// Logic adds the next logic action of the document.
func (a *ActionBuilder) Logic(name string, utterances ...string) *ActionBuilder {
	return a.doc.Logic(name, utterances...)
}

// ResolverBuilder configures a resolver.
type ResolverBuilder struct {
	resolver domain.Resolver
	commit   func(domain.Resolver)
}

func newResolverBuilder(name string) *ResolverBuilder {
	return &ResolverBuilder{resolver: domain.Resolver{Name: name, Intents: make(map[string]domain.ResolverIntent)}}
}

// Intent adds a resolvable value and its utterance templates.
func (r *ResolverBuilder) Intent(key string, value any, utterances ...string) *ResolverBuilder {
	r.resolver.Intents[key] = domain.ResolverIntent{UtteranceSamples: utterances, Value: value}
	if r.commit != nil {
		r.commit(r.resolver)
	}
	return r
}

// EntityBuilder configures a global entity.
type EntityBuilder struct {
	entity domain.Entity
}

// Option adds an entity value and its synonyms.
func (e *EntityBuilder) Option(name string, synonyms ...string) *EntityBuilder {
	e.entity.Options[name] = domain.EntityOption{Synonyms: synonyms}
	return e
}

func value(values []string) domain.Value {
	if len(values) == 1 {
		return domain.Value{Items: values}
	}
	return domain.Value{Items: values, List: true}
}
