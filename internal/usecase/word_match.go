package usecase

import (
	"regexp"
	"strings"
)

// termAlternation quotes each term and joins them into a regexp alternation.
// Terms keep their order so earlier (longer) entries win at the same position.
func termAlternation(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" {
			continue
		}
		quoted = append(quoted, boundedTerm(t))
	}
	return strings.Join(quoted, "|")
}

// boundedTerm wraps a quoted term in \b on each side that starts or ends with a
// word character; a boundary next to punctuation ("100%", "eco-claim:") would
// otherwise demand a word character that is never there.
func boundedTerm(term string) string {
	quoted := regexp.QuoteMeta(term)
	if isWordByte(term[0]) {
		quoted = `\b` + quoted
	}
	if isWordByte(term[len(term)-1]) {
		quoted = quoted + `\b`
	}
	return quoted
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// wholeWordPattern compiles a case-insensitive whole-word matcher for any of terms.
// It returns nil when terms is empty.
func wholeWordPattern(terms []string) *regexp.Regexp {
	alt := termAlternation(terms)
	if alt == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)(?:` + alt + `)`)
}

// termMatcher finds which individual terms occur as whole words, preserving term order
type termMatcher struct {
	terms    []string
	patterns []*regexp.Regexp
}

func newTermMatcher(terms []string) *termMatcher {
	m := &termMatcher{}
	for _, t := range terms {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" {
			continue
		}
		m.terms = append(m.terms, t)
		m.patterns = append(m.patterns, regexp.MustCompile(`(?i)`+boundedTerm(t)))
	}
	return m
}

// Matches returns every term found in text, in declaration order
func (m *termMatcher) Matches(text string) []string {
	var found []string
	for i, re := range m.patterns {
		if re.MatchString(text) {
			found = append(found, m.terms[i])
		}
	}
	return found
}

// Any reports whether at least one term is found in text
func (m *termMatcher) Any(text string) bool {
	for _, re := range m.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
