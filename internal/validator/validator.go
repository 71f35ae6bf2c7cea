// Package validator checks a project snapshot for problems that would abort a
// training run or silently degrade the trained models.
package validator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/glossa/internal/compiler"
	"github.com/aretw0/glossa/pkg/domain"
)

// Severity ranks an issue.
type Severity string

const (
	// SeverityError aborts a training run.
	SeverityError Severity = "error"
	// SeverityWarning trains, but not what the author probably meant.
	SeverityWarning Severity = "warning"
)

// Issue is one finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Lang     string   `json:"lang,omitempty"`
	Location string   `json:"location"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Lang == "" {
		return fmt.Sprintf("%s: %s", i.Location, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Lang, i.Location, i.Message)
}

// Result holds every issue found, in discovery order.
type Result struct {
	Issues []Issue `json:"issues"`
}

func (r *Result) add(sev Severity, lang, location, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Lang:     lang,
		Location: location,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Result) filter(sev Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}

// Errors returns the blocking issues.
func (r *Result) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the non-blocking issues.
func (r *Result) Warnings() []Issue { return r.filter(SeverityWarning) }

// Err joins the blocking issues, or returns nil when there are none.
func (r *Result) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(lines, "\n- "))
}

var placeholderRe = regexp.MustCompile(`%([A-Za-z0-9_.-]+)%`)

// Validate compiles both corpora of every language against snap, without
// training, and reports what it finds. Only ctx cancellation is returned as an error.
func Validate(ctx context.Context, snap *domain.Snapshot, languages []string, limit int) (*Result, error) {
	res := &Result{}

	if len(snap.Domains) == 0 {
		res.add(SeverityWarning, "", "skills", "no domain found")
	}

	for _, lang := range languages {
		hooks := domain.LifecycleHooks{
			OnSkillSkipped: func(_ context.Context, e *domain.SkillEvent) {
				res.add(SeverityWarning, e.Lang, e.Domain+"/"+e.Skill, "no NLU document, skill is not trained")
			},
			OnExpansionLimit: func(_ context.Context, e *domain.ExpansionEvent) {
				res.add(SeverityWarning, e.Lang, e.Intent, "template %q expands to %d combinations, truncated to %d", e.Template, e.Combinations, e.Limit)
			},
			OnSlotIgnored: func(_ context.Context, e *domain.SlotEvent) {
				res.add(SeverityWarning, e.Lang, e.Intent, "slot %q uses item type %q, which is not bound", e.Slot, e.ItemType)
			},
		}
		c := compiler.New(compiler.WithExpansionLimit(limit), compiler.WithLifecycleHooks(hooks))
		discard := func(domain.Record) error { return nil }

		if err := c.ResolversCorpus(ctx, snap, lang, discard); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			res.add(SeverityError, lang, "resolvers", "%v", err)
		}
		if err := c.MainCorpus(ctx, snap, lang, discard); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			var typeErr *domain.UnsupportedActionTypeError
			location := "main"
			if errors.As(err, &typeErr) {
				location = domain.Intent(typeErr.Skill, typeErr.Action)
			}
			res.add(SeverityError, lang, location, "%v", err)
		}

		checkDocuments(res, snap, lang)
	}

	return res, nil
}

// checkDocuments reports empty actions and placeholders with no variable.
func checkDocuments(res *Result, snap *domain.Snapshot, lang string) {
	for _, d := range snap.Domains {
		for _, sk := range d.Skills {
			doc, ok := sk.Document(lang)
			if !ok {
				continue
			}
			for _, name := range doc.ActionNames() {
				action := doc.Actions[name]
				intent := domain.Intent(sk.Name, name)

				if len(action.UtteranceSamples) == 0 {
					res.add(SeverityWarning, lang, intent, "no utterance samples")
				}
				if action.Type != domain.ActionDialog {
					continue
				}
				if len(action.Answers) == 0 {
					res.add(SeverityWarning, lang, intent, "dialog action without answers")
				}
				vars := doc.Variables.Merge(action.Variables)
				for _, missing := range unbound(action.Answers, vars) {
					res.add(SeverityWarning, lang, intent, "answer placeholder %%%s%% has no variable", missing)
				}
			}
		}
	}
}

func unbound(texts []string, vars domain.Variables) []string {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
			if _, ok := vars[m[1]]; !ok {
				seen[m[1]] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
