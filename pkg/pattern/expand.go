package pattern

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/glossa/pkg/domain"
)

// DefaultLimit is the combination ceiling used when none is configured.
const DefaultLimit = 10000

// MaxLimit is the hard ceiling. Larger or negative limits are clamped to it.
const MaxLimit = 1 << 20

// preallocCap bounds the up-front allocation of the result slice.
const preallocCap = 1024

// Expander computes the alternatives of a template.
type Expander struct {
	// Limit caps the number of generated strings per template.
	// Zero means DefaultLimit; a negative value or one above MaxLimit means MaxLimit.
	Limit int
}

// EffectiveLimit resolves the ceiling actually applied for limit.
func EffectiveLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 0, limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// NewExpander creates an expander with the given ceiling.
func NewExpander(limit int) *Expander {
	return &Expander{Limit: limit}
}

var defaultExpander = NewExpander(DefaultLimit)

// Expand expands template with the default ceiling.
func Expand(template string) ([]string, error) {
	return defaultExpander.Expand(template)
}

type segment struct {
	literal string
	alts    []string
}

// Expand returns every combination of the template groups in lexicographic
// group-index order. A template without groups yields itself.
// When the combination count exceeds the ceiling, the first combinations up to
// the ceiling are returned together with a *domain.ExpansionLimitError.
//
// An empty alternative drops one of the whitespace runs around it and the
// result is trimmed; whitespace inside literal text is kept as written.
func (e *Expander) Expand(template string) ([]string, error) {
	segments, groups := parse(template)
	if groups == 0 {
		return []string{template}, nil
	}

	limit := EffectiveLimit(e.Limit)

	total := combinations(segments)
	count := total
	var err error
	if total > limit {
		count = limit
		err = &domain.ExpansionLimitError{Template: template, Combinations: total, Limit: limit}
	}

	out := make([]string, 0, min(count, preallocCap))
	indices := make([]int, len(segments))
	var sb strings.Builder
	for n := 0; n < count; n++ {
		sb.Reset()
		afterEmpty := false
		for i, seg := range segments {
			if seg.alts == nil {
				lit := seg.literal
				if afterEmpty && endsWithSpace(sb.String()) {
					lit = strings.TrimLeftFunc(lit, unicode.IsSpace)
				}
				sb.WriteString(lit)
				afterEmpty = afterEmpty && lit == ""
				continue
			}
			alt := seg.alts[indices[i]]
			sb.WriteString(alt)
			afterEmpty = alt == "" && (afterEmpty || sb.Len() == 0 || endsWithSpace(sb.String()))
		}
		out = append(out, strings.TrimSpace(sb.String()))

		// Odometer: the rightmost group turns fastest.
		for i := len(segments) - 1; i >= 0; i-- {
			if segments[i].alts == nil {
				continue
			}
			indices[i]++
			if indices[i] < len(segments[i].alts) {
				break
			}
			indices[i] = 0
		}
	}

	return out, err
}

// combinations multiplies the group sizes, saturating at math.MaxInt32.
// A saturated product is always above MaxLimit, so it is always reported.
func combinations(segments []segment) int {
	total := 1
	for _, seg := range segments {
		if seg.alts == nil {
			continue
		}
		total *= len(seg.alts)
		if total > math.MaxInt32 {
			return math.MaxInt32
		}
	}
	return total
}

var closers = map[byte]byte{'{': '}', '[': ']'}

// parse splits a template into literal and group segments. An opener without
// a matching closer, or with another opener before it, is kept as text.
func parse(template string) ([]segment, int) {
	var segments []segment
	var lit strings.Builder
	groups := 0

	for i := 0; i < len(template); i++ {
		c := template[i]
		closer, isOpener := closers[c]
		if !isOpener {
			lit.WriteByte(c)
			continue
		}
		end := findClose(template, i+1, closer)
		if end < 0 {
			lit.WriteByte(c)
			continue
		}
		if lit.Len() > 0 {
			segments = append(segments, segment{literal: lit.String()})
			lit.Reset()
		}
		segments = append(segments, segment{alts: strings.Split(template[i+1:end], "|")})
		groups++
		i = end
	}
	if lit.Len() > 0 {
		segments = append(segments, segment{literal: lit.String()})
	}
	return segments, groups
}

func findClose(s string, from int, closer byte) int {
	for j := from; j < len(s); j++ {
		if s[j] == closer {
			return j
		}
		if _, nested := closers[s[j]]; nested {
			return -1
		}
	}
	return -1
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}
