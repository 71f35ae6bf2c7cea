// Package layout maps the conventional project tree onto a domain.Snapshot.
//
// Document IDs are slash separated paths without extension:
//
//	skills/<domain>/domain                          {"name": ...}
//	skills/<domain>/<skill>/skill                   {"name": ...}
//	skills/<domain>/<skill>/nlu/<lang>              {"actions": ..., "variables": ..., "resolvers": ...}
//	core/data/<lang>/global-resolvers/<resolver>    {"name": ..., "intents": ...}
//	core/data/<lang>/global-entities/<entity>       {"options": ...}
//
// Any other document is ignored.
package layout

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/glossa/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Document is one decoded configuration file.
type Document struct {
	ID   string
	Data map[string]any
}

// TrimExtension normalizes a file path into a document ID.
func TrimExtension(id string) string {
	id = strings.ReplaceAll(id, "\\", "/")
	if ext := path.Ext(id); ext != "" {
		return strings.TrimSuffix(id, ext)
	}
	return id
}

// Hidden reports whether id lies under a dot directory (".glossa/models", ".git").
// Hidden documents are never part of the project tree.
func Hidden(id string) bool {
	for _, part := range strings.Split(strings.ReplaceAll(id, "\\", "/"), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

type skillEntry struct {
	name string
	nlu  map[string]*domain.NLUDocument
}

type domainEntry struct {
	name   string
	skills map[string]*skillEntry
}

// Assemble builds the snapshot from the documents of a project tree.
// Domains and skills are ordered by key.
func Assemble(docs []Document) (*domain.Snapshot, error) {
	domains := make(map[string]*domainEntry)
	snap := &domain.Snapshot{
		GlobalResolvers: make(map[string][]domain.Resolver),
		GlobalEntities:  make(map[string][]domain.Entity),
	}

	getDomain := func(key string) *domainEntry {
		d, ok := domains[key]
		if !ok {
			d = &domainEntry{skills: make(map[string]*skillEntry)}
			domains[key] = d
		}
		return d
	}
	getSkill := func(domainKey, key string) *skillEntry {
		d := getDomain(domainKey)
		s, ok := d.skills[key]
		if !ok {
			s = &skillEntry{nlu: make(map[string]*domain.NLUDocument)}
			d.skills[key] = s
		}
		return s
	}

	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, doc := range sorted {
		parts := strings.Split(TrimExtension(doc.ID), "/")

		switch {
		case len(parts) == 3 && parts[0] == "skills" && parts[2] == "domain":
			getDomain(parts[1]).name = stringField(doc.Data, "name")

		case len(parts) == 4 && parts[0] == "skills" && parts[3] == "skill":
			getSkill(parts[1], parts[2]).name = stringField(doc.Data, "name")

		case len(parts) == 5 && parts[0] == "skills" && parts[3] == "nlu":
			nlu, err := DecodeNLU(doc.Data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", doc.ID, err)
			}
			getSkill(parts[1], parts[2]).nlu[parts[4]] = nlu

		case len(parts) == 5 && parts[0] == "core" && parts[1] == "data" && parts[3] == "global-resolvers":
			resolver, err := DecodeResolver(doc.Data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", doc.ID, err)
			}
			if resolver.Name == "" {
				resolver.Name = parts[4]
			}
			snap.GlobalResolvers[parts[2]] = append(snap.GlobalResolvers[parts[2]], resolver)

		case len(parts) == 5 && parts[0] == "core" && parts[1] == "data" && parts[3] == "global-entities":
			entity, err := DecodeEntity(doc.Data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", doc.ID, err)
			}
			entity.Name = parts[4]
			snap.GlobalEntities[parts[2]] = append(snap.GlobalEntities[parts[2]], entity)
		}
	}

	for _, domainKey := range sortedKeys(domains) {
		entry := domains[domainKey]
		d := domain.Domain{Key: domainKey, Name: entry.name}
		if d.Name == "" {
			d.Name = domainKey
		}
		for _, skillKey := range sortedKeys(entry.skills) {
			s := entry.skills[skillKey]
			skill := domain.Skill{
				Key:  skillKey,
				Name: s.name,
				Path: path.Join("skills", domainKey, skillKey),
				NLU:  s.nlu,
			}
			if skill.Name == "" {
				skill.Name = skillKey
			}
			d.Skills = append(d.Skills, skill)
		}
		snap.Domains = append(snap.Domains, d)
	}

	return snap, nil
}

// DecodeNLU converts a raw nlu/<lang> document.
func DecodeNLU(data map[string]any) (*domain.NLUDocument, error) {
	doc := &domain.NLUDocument{Actions: make(map[string]domain.Action)}

	actions, err := mapField(data, "actions")
	if err != nil {
		return nil, err
	}
	for name, raw := range actions {
		action, err := DecodeAction(raw)
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", name, err)
		}
		doc.Actions[name] = action
	}

	vars, err := mapField(data, "variables")
	if err != nil {
		return nil, err
	}
	if doc.Variables, err = domain.ParseVariables(vars); err != nil {
		return nil, err
	}

	resolvers, err := mapField(data, "resolvers")
	if err != nil {
		return nil, err
	}
	if len(resolvers) > 0 {
		doc.Resolvers = make(map[string]domain.Resolver, len(resolvers))
		for name, raw := range resolvers {
			m, ok := asMap(raw)
			if !ok {
				return nil, fmt.Errorf("resolver %q: expected object, got %T", name, raw)
			}
			resolver, err := DecodeResolver(m)
			if err != nil {
				return nil, fmt.Errorf("resolver %q: %w", name, err)
			}
			resolver.Name = name
			doc.Resolvers[name] = resolver
		}
	}

	return doc, nil
}

// DecodeAction converts one raw action definition. The type is not validated here.
func DecodeAction(raw any) (domain.Action, error) {
	var action domain.Action
	m, ok := asMap(raw)
	if !ok {
		return action, fmt.Errorf("expected object, got %T", raw)
	}
	if err := decode(m, &action); err != nil {
		return action, err
	}
	vars, err := mapField(m, "variables")
	if err != nil {
		return action, err
	}
	action.Variables, err = domain.ParseVariables(vars)
	return action, err
}

// DecodeResolver converts a raw resolver definition.
func DecodeResolver(data map[string]any) (domain.Resolver, error) {
	var resolver domain.Resolver
	err := decode(data, &resolver)
	return resolver, err
}

// DecodeEntity converts a raw global entity definition.
func DecodeEntity(data map[string]any) (domain.Entity, error) {
	var entity domain.Entity
	err := decode(data, &entity)
	return entity, err
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}

func mapField(data map[string]any, key string) (map[string]any, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	m, ok := asMap(raw)
	if !ok {
		return nil, fmt.Errorf("%s: expected object, got %T", key, raw)
	}
	return m, nil
}

// asMap accepts both JSON style and YAML v2 style maps.
func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprintf("%v", k)] = val
		}
		return m, true
	default:
		return nil, false
	}
}

func stringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
