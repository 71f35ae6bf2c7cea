package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/glossa/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart of the intent hierarchy for lang.
// It applies semantic styling:
// - Domain: ((Circle))
// - Skill: [[Subroutine]]
// - Dialog intent: [Rectangle]
// - Logic intent: [/Parallelogram/]
// Skills without NLU data for lang are linked with a dotted arrow and styled as missing.
func GenerateMermaid(snap *domain.Snapshot, lang string) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var missing []string
	for _, d := range snap.Domains {
		domainID := sanitizeMermaidID("domain/" + d.Key)
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", domainID, escape(d.Name)))

		for _, skill := range d.Skills {
			skillID := sanitizeMermaidID("skill/" + d.Key + "/" + skill.Key)
			sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", skillID, escape(skill.Name)))

			doc, ok := skill.Document(lang)
			if !ok {
				sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", domainID, skillID))
				missing = append(missing, skillID)
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", domainID, skillID))

			for _, name := range doc.ActionNames() {
				action := doc.Actions[name]
				intent := domain.Intent(skill.Name, name)
				intentID := sanitizeMermaidID("intent/" + intent)

				opener, closer := "[", "]"
				if action.Type == domain.ActionLogic {
					opener, closer = "[/", "/]"
				}
				sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", intentID, opener, escape(intent), closer))

				arrow := "-->"
				if n := len(action.UtteranceSamples); n > 0 {
					arrow = fmt.Sprintf("-- \"%d samples\" -->", n)
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", skillID, arrow, intentID))
			}
		}
	}

	if resolvers := snap.GlobalResolvers[lang]; len(resolvers) > 0 {
		systemID := sanitizeMermaidID("domain/" + domain.SystemDomain)
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", systemID, domain.SystemDomain))
		for _, r := range resolvers {
			resolverID := sanitizeMermaidID("resolver/" + r.Name)
			sb.WriteString(fmt.Sprintf("    %s{{\"%s\"}}\n", resolverID, escape(r.Name)))
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", systemID, resolverID))
		}
	}

	if len(missing) > 0 {
		sb.WriteString("\n    %% Missing language data\n")
		sb.WriteString("    classDef missing fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#000;\n")
		for _, id := range missing {
			sb.WriteString(fmt.Sprintf("    class %s missing;\n", id))
		}
	}

	return sb.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
