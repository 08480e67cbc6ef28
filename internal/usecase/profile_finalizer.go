package usecase

import (
	"strings"

	"github.com/ecoscan/backend/internal/domain"
)

// ProfileFinalizer turns candidates into a profile of unique dictionary keys
type ProfileFinalizer struct {
	catalog *domain.MaterialCatalog
}

// NewProfileFinalizer creates a finalizer bound to the catalog
func NewProfileFinalizer(catalog *domain.MaterialCatalog) *ProfileFinalizer {
	return &ProfileFinalizer{catalog: catalog}
}

// Finalize keeps the first occurrence of each material (case-insensitive) and drops
// everything that is not a dictionary key. Candidate order is preserved.
func (f *ProfileFinalizer) Finalize(candidates []domain.MaterialCandidate) domain.MaterialProfile {
	profile := domain.NewMaterialProfile()
	seen := make(map[string]bool, len(candidates))

	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c.Text))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		entry, ok := f.catalog.Lookup(key)
		if !ok {
			continue
		}
		profile.Add(entry.Name, c.Percentage)
	}

	return profile
}
