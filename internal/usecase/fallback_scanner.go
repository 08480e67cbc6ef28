package usecase

import (
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

// FallbackScanner finds dictionary keys by plain substring search when nothing
// else was extracted
type FallbackScanner struct {
	keys []string
}

// NewFallbackScanner snapshots the dictionary keys, eco-friendly first
func NewFallbackScanner(catalog *domain.MaterialCatalog) *FallbackScanner {
	entries := catalog.Entries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Name
	}
	return &FallbackScanner{keys: keys}
}

// Scan returns every key that occurs in text, in dictionary order
func (f *FallbackScanner) Scan(text string) []domain.MaterialCandidate {
	var out []domain.MaterialCandidate
	for _, key := range f.keys {
		if strings.Contains(text, key) {
			out = append(out, domain.MaterialCandidate{Text: key, Percentage: defaultPercentage})
		}
	}
	return out
}
