/*
Package domain contains the core data model of the Glossa corpus compiler.

It describes the configuration hierarchy a skill-based assistant is built from
(Domains, Skills, Actions, Slots, Resolvers and Entities) and the flat stream of
training Records the compiler emits for an external NLU/NLG engine. The package
is pure: it has no I/O and no knowledge of where the configuration came from or
where the records go.

# Key Entities

  - Snapshot: An immutable view of the whole configuration, taken once per run.
  - Domain / Skill: The topic grouping and the capability bundle it contains.
  - Action: One trainable behavior of a skill, either "dialog" or "logic".
  - Record: The compiler output unit (document, answer, domain assignment, slot, entity).
  - Model: The persisted artifact a training sink produces from the records.
*/
package domain
