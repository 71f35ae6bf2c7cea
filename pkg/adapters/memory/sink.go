package memory

import (
	"context"
	"sort"

	"github.com/aretw0/glossa/pkg/domain"
)

// Sink implements ports.TrainingSink by recording every call.
// It is meant for tests and dry runs; Train only flips Trained (or returns TrainErr).
type Sink struct {
	Languages []string
	Records   []domain.Record
	Trained   bool
	TrainErr  error
}

// NewSink creates an empty recording sink.
func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) AddLanguage(lang string) {
	s.Languages = append(s.Languages, lang)
}

func (s *Sink) AddDocument(lang, text, intent string) {
	s.Records = append(s.Records, domain.NewDocument(lang, text, intent))
}

func (s *Sink) AddAnswer(lang, intent, text string) {
	s.Records = append(s.Records, domain.NewAnswer(lang, intent, text))
}

func (s *Sink) AssignDomain(lang, intent, domainName string) {
	s.Records = append(s.Records, domain.NewDomainAssignment(lang, intent, domainName))
}

func (s *Sink) AddSlot(intent, slotKey string, required bool, prompts map[string][]string) {
	langs := make([]string, 0, len(prompts))
	for lang := range prompts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		s.Records = append(s.Records, domain.NewSlotBinding(intent, slotKey, required, lang, prompts[lang]))
	}
}

func (s *Sink) AddEntity(lang, entity, option string, synonyms []string) {
	s.Records = append(s.Records, domain.NewEntityOption(lang, entity, option, synonyms))
}

// Train marks the sink as trained unless TrainErr is set.
func (s *Sink) Train(ctx context.Context) error {
	if s.TrainErr != nil {
		return s.TrainErr
	}
	s.Trained = true
	return nil
}

// Kinds returns the records of the given kind, in emission order.
func (s *Sink) Kinds(kind domain.RecordKind) []domain.Record {
	var out []domain.Record
	for _, r := range s.Records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
