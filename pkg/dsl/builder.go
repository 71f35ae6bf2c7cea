package dsl

import (
	"sort"

	"github.com/aretw0/glossa/pkg/adapters/memory"
	"github.com/aretw0/glossa/pkg/domain"
)

// Builder manages the project construction.
type Builder struct {
	domains   map[string]*DomainBuilder
	resolvers map[string]map[string]*ResolverBuilder
	entities  map[string]map[string]*EntityBuilder
}

// New creates a new project builder.
func New() *Builder {
	return &Builder{
		domains:   make(map[string]*DomainBuilder),
		resolvers: make(map[string]map[string]*ResolverBuilder),
		entities:  make(map[string]map[string]*EntityBuilder),
	}
}

// Domain returns the builder of the domain key, creating it when needed.
// The domain name defaults to its key.
func (b *Builder) Domain(key string) *DomainBuilder {
	if d, ok := b.domains[key]; ok {
		return d
	}
	d := &DomainBuilder{domain: domain.Domain{Key: key, Name: key}, skills: make(map[string]*SkillBuilder)}
	b.domains[key] = d
	return d
}

// GlobalResolver returns the builder of a resolver shared by every skill of lang.
func (b *Builder) GlobalResolver(lang, name string) *ResolverBuilder {
	if b.resolvers[lang] == nil {
		b.resolvers[lang] = make(map[string]*ResolverBuilder)
	}
	if r, ok := b.resolvers[lang][name]; ok {
		return r
	}
	r := newResolverBuilder(name)
	b.resolvers[lang][name] = r
	return r
}

// GlobalEntity returns the builder of an entity of lang.
func (b *Builder) GlobalEntity(lang, name string) *EntityBuilder {
	if b.entities[lang] == nil {
		b.entities[lang] = make(map[string]*EntityBuilder)
	}
	if e, ok := b.entities[lang][name]; ok {
		return e
	}
	e := &EntityBuilder{entity: domain.Entity{Name: name, Options: make(map[string]domain.EntityOption)}}
	b.entities[lang][name] = e
	return e
}

// Snapshot assembles the project. Domains, skills, resolvers and entities are
// ordered by key, the way the file loaders order them.
func (b *Builder) Snapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		GlobalResolvers: make(map[string][]domain.Resolver),
		GlobalEntities:  make(map[string][]domain.Entity),
	}
	for _, key := range sortedKeys(b.domains) {
		snap.Domains = append(snap.Domains, b.domains[key].build())
	}
	for lang, byName := range b.resolvers {
		for _, name := range sortedKeys(byName) {
			snap.GlobalResolvers[lang] = append(snap.GlobalResolvers[lang], byName[name].resolver)
		}
	}
	for lang, byName := range b.entities {
		for _, name := range sortedKeys(byName) {
			snap.GlobalEntities[lang] = append(snap.GlobalEntities[lang], byName[name].entity)
		}
	}
	return snap
}

// Build compiles the project into a MemoryLoader.
func (b *Builder) Build() *memory.Loader {
	return memory.NewFromSnapshot(b.Snapshot())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
