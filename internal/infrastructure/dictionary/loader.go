// Package dictionary loads the canonical material dictionaries and vocabularies.
//
// The stock data ships embedded in the binary (materials.yaml). An override file with
// the same schema may be supplied at startup; either way the data is validated once and
// any malformed entry aborts loading, since a corrupt dictionary would silently skew
// every score computed afterwards.
package dictionary

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ecoscan/backend/internal/domain"
	"github.com/ecoscan/backend/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

//go:embed materials.yaml
var embedded []byte

// Bundle is a validated dictionary set ready to be handed to the engine
type Bundle struct {
	Catalog *domain.MaterialCatalog
	Lexicon domain.Lexicon
	Version int
	Digest  string // blake3 of the source document
}

type entryDoc struct {
	Name          string   `yaml:"name"`
	Score         *float64 `yaml:"score"`
	Category      string   `yaml:"category"`
	Recyclable    *bool    `yaml:"recyclable"`
	Biodegradable *bool    `yaml:"biodegradable"`
}

type document struct {
	Version        int            `yaml:"version"`
	EcoFriendly    []entryDoc     `yaml:"eco_friendly"`
	NonEcoFriendly []entryDoc     `yaml:"non_eco_friendly"`
	Lexicon        domain.Lexicon `yaml:"lexicon"`
}

// Load returns the embedded dictionary when path is empty, otherwise the file at path
func Load(path string) (*Bundle, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}

// LoadDefault parses the embedded dictionary
func LoadDefault() (*Bundle, error) {
	return Parse(embedded)
}

// LoadFile parses a dictionary override file
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a dictionary document
func Parse(data []byte) (*Bundle, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDictionary)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDictionary, err)
	}

	eco, err := toEntries(doc.EcoFriendly, "eco_friendly")
	if err != nil {
		return nil, err
	}
	nonEco, err := toEntries(doc.NonEcoFriendly, "non_eco_friendly")
	if err != nil {
		return nil, err
	}

	catalog, err := domain.NewMaterialCatalog(eco, nonEco)
	if err != nil {
		return nil, err
	}
	if err := doc.Lexicon.Validate(); err != nil {
		return nil, err
	}

	digest, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Catalog: catalog,
		Lexicon: doc.Lexicon,
		Version: doc.Version,
		Digest:  digest,
	}, nil
}

// toEntries converts decoded entries, rejecting any with a missing field
func toEntries(docs []entryDoc, section string) ([]domain.MaterialEntry, error) {
	entries := make([]domain.MaterialEntry, 0, len(docs))
	for i, d := range docs {
		missing := missingFields(d)
		if len(missing) > 0 {
			name := d.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("%w: %s entry %q missing %v", domain.ErrInvalidDictionary, section, name, missing)
		}
		entries = append(entries, domain.MaterialEntry{
			Name:          d.Name,
			Score:         *d.Score,
			Category:      domain.Category(d.Category),
			Recyclable:    *d.Recyclable,
			Biodegradable: *d.Biodegradable,
		})
	}
	return entries, nil
}

func missingFields(d entryDoc) []string {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Score == nil {
		missing = append(missing, "score")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	if d.Recyclable == nil {
		missing = append(missing, "recyclable")
	}
	if d.Biodegradable == nil {
		missing = append(missing, "biodegradable")
	}
	return missing
}
