package compiler

import (
	"context"

	"github.com/aretw0/glossa/pkg/domain"
)

// GlobalResolvers compiles the resolvers shared by every skill. Their intents
// belong to the system domain.
func (c *Compiler) GlobalResolvers(ctx context.Context, snap *domain.Snapshot, lang string, emit Emit) error {
	for _, resolver := range snap.GlobalResolvers[lang] {
		c.logger.Debug("Training global resolver", "lang", lang, "resolver", resolver.Name)
		err := c.compileResolver(ctx, lang, domain.SystemDomain, resolver, func(key string) string {
			return domain.GlobalResolverIntent(resolver.Name, key)
		}, emit)
		if err != nil {
			return err
		}
	}
	return nil
}

// GlobalEntities emits one entity record per option of every global entity.
func (c *Compiler) GlobalEntities(ctx context.Context, snap *domain.Snapshot, lang string, emit Emit) error {
	for _, entity := range snap.GlobalEntities[lang] {
		c.logger.Debug("Training global entity", "lang", lang, "entity", entity.Name)
		for _, option := range entity.OptionNames() {
			synonyms := entity.Options[option].Synonyms
			if err := emit(domain.NewEntityOption(lang, entity.Name, option, synonyms)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolversCorpus emits the resolvers model corpus of lang: global resolvers first,
// then skill resolvers.
func (c *Compiler) ResolversCorpus(ctx context.Context, snap *domain.Snapshot, lang string, emit Emit) error {
	if err := c.GlobalResolvers(ctx, snap, lang, emit); err != nil {
		return err
	}
	return c.WalkSkillResolvers(ctx, snap, lang, emit)
}

// MainCorpus emits the main model corpus of lang: global entities first, then
// skill actions.
func (c *Compiler) MainCorpus(ctx context.Context, snap *domain.Snapshot, lang string, emit Emit) error {
	if err := c.GlobalEntities(ctx, snap, lang, emit); err != nil {
		return err
	}
	return c.WalkActions(ctx, snap, lang, emit)
}
