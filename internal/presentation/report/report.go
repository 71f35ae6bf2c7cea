// Package report renders training runs and compiled corpora as markdown.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/glossa/internal/runtime"
	"github.com/aretw0/glossa/pkg/domain"
)

// Run renders the outcome of a training run.
func Run(r *runtime.Report) string {
	var sb strings.Builder
	sb.WriteString("# Training run\n\n")
	sb.WriteString(fmt.Sprintf("Languages: %s  \n", strings.Join(r.Languages, ", ")))
	sb.WriteString(fmt.Sprintf("Duration: %s\n\n", r.Duration.Round(time.Millisecond)))

	if len(r.Models) == 0 {
		sb.WriteString("_No model was trained._\n")
		return sb.String()
	}

	sb.WriteString("| Model | Records | Duration | Outcome |\n")
	sb.WriteString("|---|---:|---:|---|\n")
	for _, m := range r.Models {
		outcome := "saved"
		if !m.OK() {
			outcome = "failed: " + cell(m.Err.Error())
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n", m.Name, m.Records, m.Duration.Round(time.Millisecond), outcome))
	}
	return sb.String()
}

// Corpus renders per-language and per-intent counts of a record stream.
func Corpus(title string, records []domain.Record) string {
	type counts struct {
		documents, answers, slots int
	}
	intents := map[string]*counts{}
	domains := map[string]string{}
	entities := map[string]int{}

	for _, r := range records {
		if r.Kind == domain.RecordEntity {
			entities[r.Lang+"/"+r.Entity]++
			continue
		}
		key := r.Lang + "\x00" + r.Intent
		c, ok := intents[key]
		if !ok {
			c = &counts{}
			intents[key] = c
		}
		switch r.Kind {
		case domain.RecordDomain:
			domains[key] = r.Domain
		case domain.RecordDocument:
			c.documents++
		case domain.RecordAnswer:
			c.answers++
		case domain.RecordSlot:
			c.slots++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("%d records, %d intents, %d entities\n\n", len(records), len(intents), len(entities)))

	if len(intents) > 0 {
		sb.WriteString("| Lang | Intent | Domain | Documents | Answers | Slots |\n")
		sb.WriteString("|---|---|---|---:|---:|---:|\n")
		for _, key := range sortedKeys(intents) {
			lang, intent, _ := strings.Cut(key, "\x00")
			c := intents[key]
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %d |\n",
				lang, cell(intent), cell(domains[key]), c.documents, c.answers, c.slots))
		}
	}

	if len(entities) > 0 {
		sb.WriteString("\n| Entity | Options |\n|---|---:|\n")
		for _, key := range sortedKeys(entities) {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", cell(key), entities[key]))
		}
	}
	return sb.String()
}

// Expansion renders the alternatives of one template as a list.
func Expansion(template string, alternatives []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("`%s` → %d alternatives\n\n", template, len(alternatives)))
	for _, alt := range alternatives {
		sb.WriteString("- " + alt + "\n")
	}
	return sb.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
