package domain

// RecordKind identifies the variant of a training record.
type RecordKind string

const (
	RecordDomain   RecordKind = "domain"
	RecordDocument RecordKind = "document"
	RecordAnswer   RecordKind = "answer"
	RecordSlot     RecordKind = "slot"
	RecordEntity   RecordKind = "entity"
)

// Record is the compiler output unit. Only the fields relevant to Kind are set.
type Record struct {
	Kind   RecordKind `json:"kind"`
	Lang   string     `json:"lang"`
	Intent string     `json:"intent,omitempty"`
	// Text is the utterance (document) or the bound answer.
	Text string `json:"text,omitempty"`
	// Domain is the domain name of a domain assignment.
	Domain string `json:"domain,omitempty"`

	SlotKey  string   `json:"slot_key,omitempty"`
	Required bool     `json:"required,omitempty"`
	Prompts  []string `json:"prompts,omitempty"`

	Entity   string   `json:"entity,omitempty"`
	Option   string   `json:"option,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// NewDomainAssignment maps intent to a domain.
func NewDomainAssignment(lang, intent, domainName string) Record {
	return Record{Kind: RecordDomain, Lang: lang, Intent: intent, Domain: domainName}
}

// NewDocument is one training utterance for intent.
func NewDocument(lang, text, intent string) Record {
	return Record{Kind: RecordDocument, Lang: lang, Text: text, Intent: intent}
}

// NewAnswer is one answer the engine may produce for intent.
func NewAnswer(lang, intent, text string) Record {
	return Record{Kind: RecordAnswer, Lang: lang, Intent: intent, Text: text}
}

// NewSlotBinding declares a slot of intent.
func NewSlotBinding(intent, slotKey string, required bool, lang string, prompts []string) Record {
	return Record{
		Kind:     RecordSlot,
		Lang:     lang,
		Intent:   intent,
		SlotKey:  slotKey,
		Required: required,
		Prompts:  prompts,
	}
}

// NewEntityOption declares one option of a global entity.
func NewEntityOption(lang, entity, option string, synonyms []string) Record {
	return Record{Kind: RecordEntity, Lang: lang, Entity: entity, Option: option, Synonyms: synonyms}
}
