package ports

import "context"

// TrainingSink is the NLU/NLG engine interface the compiled records are folded onto.
// Implementations are not required to be safe for concurrent use.
type TrainingSink interface {
	AddLanguage(lang string)
	AddDocument(lang, text, intent string)
	AddAnswer(lang, intent, text string)
	AssignDomain(lang, intent, domainName string)
	// AddSlot registers a slot; prompts are keyed by language.
	AddSlot(intent, slotKey string, required bool, prompts map[string][]string)
	AddEntity(lang, entity, option string, synonyms []string)

	// Train builds and persists the model.
	Train(ctx context.Context) error
}
