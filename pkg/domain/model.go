package domain

import "time"

// Model names used by the training orchestrator.
const (
	ModelResolvers = "resolvers"
	ModelMain      = "main"
)

// ModelSettings are the engine flags persisted alongside a corpus.
type ModelSettings struct {
	Threshold          float64 `json:"threshold" yaml:"threshold"`
	TrainByDomain      bool    `json:"train_by_domain" yaml:"train_by_domain"`
	ForceNER           bool    `json:"force_ner" yaml:"force_ner"`
	CalculateSentiment bool    `json:"calculate_sentiment" yaml:"calculate_sentiment"`
}

// Model is the persisted training artifact of one sink.
type Model struct {
	Name      string        `json:"name"`
	RunID     string        `json:"run_id"`
	TrainedAt time.Time     `json:"trained_at"`
	Settings  ModelSettings `json:"settings"`
	Languages []string      `json:"languages"`
	Corpus    []Record      `json:"corpus"`
	// Sealed holds the encrypted corpus when the store encrypts models.
	// Corpus is then empty.
	Sealed []byte `json:"sealed,omitempty"`
}

// ModelStats summarizes a corpus.
type ModelStats struct {
	Documents   int `json:"documents"`
	Answers     int `json:"answers"`
	Intents     int `json:"intents"`
	Slots       int `json:"slots"`
	Entities    int `json:"entities"`
	Assignments int `json:"assignments"`
}

// Stats counts the records of the model by kind.
func (m *Model) Stats() ModelStats {
	var stats ModelStats
	intents := make(map[string]struct{})
	for _, r := range m.Corpus {
		switch r.Kind {
		case RecordDocument:
			stats.Documents++
			intents[r.Intent] = struct{}{}
		case RecordAnswer:
			stats.Answers++
		case RecordSlot:
			stats.Slots++
		case RecordEntity:
			stats.Entities++
		case RecordDomain:
			stats.Assignments++
			intents[r.Intent] = struct{}{}
		}
	}
	stats.Intents = len(intents)
	return stats
}
