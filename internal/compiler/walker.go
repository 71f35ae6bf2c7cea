package compiler

import (
	"context"

	"github.com/aretw0/glossa/pkg/domain"
)

// WalkActions compiles every action of every skill for lang, domain by domain,
// and forwards the records to emit in order. Skills without an NLU document for
// lang are skipped. An unsupported action type stops the walk; records of the
// actions compiled before it have already been emitted.
func (c *Compiler) WalkActions(ctx context.Context, snap *domain.Snapshot, lang string, emit Emit) error {
	for _, d := range snap.Domains {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.logger.Info("Training domain model", "lang", lang, "domain", d.Key)

		for _, skill := range d.Skills {
			doc, ok := c.skillDocument(ctx, d, skill, lang, true)
			if !ok {
				continue
			}

			for _, name := range doc.ActionNames() {
				records, err := c.CompileAction(ctx, ActionInput{
					Lang:       lang,
					DomainName: d.Name,
					SkillName:  skill.Name,
					ActionName: name,
					Action:     doc.Actions[name],
					Variables:  doc.Variables,
				})
				if err != nil {
					return err
				}
				if err := emitAll(emit, records); err != nil {
					return err
				}
			}
		}

		c.logger.Info("Domain trained", "lang", lang, "domain", d.Key)
	}
	return nil
}

// WalkSkillResolvers compiles the resolvers declared in skill NLU documents.
// Skipped skills are only reported by WalkActions, once per run.
func (c *Compiler) WalkSkillResolvers(ctx context.Context, snap *domain.Snapshot, lang string, emit Emit) error {
	for _, d := range snap.Domains {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, skill := range d.Skills {
			doc, ok := c.skillDocument(ctx, d, skill, lang, false)
			if !ok {
				continue
			}
			for _, name := range doc.ResolverNames() {
				resolver := doc.Resolvers[name]
				err := c.compileResolver(ctx, lang, d.Name, resolver, func(key string) string {
					return domain.SkillResolverIntent(skill.Name, name, key)
				}, emit)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *Compiler) skillDocument(ctx context.Context, d domain.Domain, skill domain.Skill, lang string, report bool) (*domain.NLUDocument, bool) {
	doc, ok := skill.Document(lang)
	if !ok {
		if !report {
			return nil, false
		}
		c.logger.Debug("Skill has no NLU data", "lang", lang, "domain", d.Key, "skill", skill.Key)
		if c.hooks.OnSkillSkipped != nil {
			c.hooks.OnSkillSkipped(ctx, &domain.SkillEvent{Domain: d.Key, Skill: skill.Key, Lang: lang})
		}
		return nil, false
	}
	c.logger.Debug("Using skill NLU data", "lang", lang, "skill", skill.Key)
	return doc, true
}

func (c *Compiler) compileResolver(ctx context.Context, lang, domainName string, resolver domain.Resolver, intentOf func(string) string, emit Emit) error {
	for _, key := range resolver.IntentKeys() {
		intent := intentOf(key)
		if err := emit(domain.NewDomainAssignment(lang, intent, domainName)); err != nil {
			return err
		}
		for _, utterance := range resolver.Intents[key].UtteranceSamples {
			for _, alt := range c.expand(ctx, lang, intent, utterance) {
				if err := emit(domain.NewDocument(lang, alt, intent)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
