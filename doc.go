/*
Package glossa compiles a skill-based NLU project into the training corpora of an
intent classification engine.

A project is a tree of domains and skills. Every skill carries one NLU document per
language listing its actions: utterance templates with alternation groups
("Turn the light {on|off}"), optional entity slots and, for dialog actions, answer
templates with %variable% placeholders. Glossa expands the templates, binds the
variables and emits a flat, ordered stream of training records.

# Models

A training run produces two independent models for every configured language:

  - resolvers: global resolvers (core/data/<lang>/global-resolvers) and the
    resolvers declared by skills, used to resolve values such as yes/no.
  - main: global entities (core/data/<lang>/global-entities) and every skill action.

Each model is persisted on its own. A failure to save one never blocks the other,
while an invalid action type aborts the run before anything is saved.

# Usage

	trainer, err := glossa.New("./my-assistant")
	if err != nil {
		log.Fatal(err)
	}

	report, err := trainer.Train(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, m := range report.Models {
		log.Println(m.Name, m.Records)
	}

Compile returns the records of one language without training, which is handy to
inspect what an engine would receive:

	records, err := trainer.Compile(ctx, "en")
*/
package glossa
