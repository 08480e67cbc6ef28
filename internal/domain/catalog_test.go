package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *MaterialCatalog {
	t.Helper()
	c, err := NewMaterialCatalog(
		[]MaterialEntry{
			{Name: "bamboo", Score: 1.0, Category: CategoryNatural, Recyclable: true, Biodegradable: true},
			{Name: "recycled polyester", Score: 0.9, Category: CategoryRecycled, Recyclable: true},
			{Name: "bamboo utensils", Score: 1.0, Category: CategoryUtensils, Recyclable: true, Biodegradable: true},
		},
		[]MaterialEntry{
			{Name: "plastic", Score: -0.9, Category: CategorySynthetic},
			{Name: "polyester", Score: -0.8, Category: CategorySynthetic},
		},
	)
	require.NoError(t, err)
	return c
}

func TestMaterialCatalog_Resolve(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name     string
		input    string
		wantName string
		wantKind MaterialKind
		wantOK   bool
	}{
		{name: "exact key", input: "polyester", wantName: "polyester", wantKind: KindNonEcoFriendly, wantOK: true},
		{name: "case insensitive", input: "Bamboo", wantName: "bamboo", wantKind: KindEcoFriendly, wantOK: true},
		{name: "eco dictionary first", input: "recycled polyester", wantName: "recycled polyester", wantKind: KindEcoFriendly, wantOK: true},
		{name: "declaration order", input: "bamboo utensils", wantName: "bamboo", wantKind: KindEcoFriendly, wantOK: true},
		{name: "key inside a claim", input: "eco-claim: plastic-free", wantName: "plastic", wantKind: KindNonEcoFriendly, wantOK: true},
		{name: "no key", input: "organic linen", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Resolve(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantKind, got.Kind)
		})
	}
}

func TestMaterialCatalog_Lookup(t *testing.T) {
	c := newCatalog(t)

	_, ok := c.Lookup("bamboo utensils")
	assert.True(t, ok)
	_, ok = c.Lookup("eco-claim: plastic-free")
	assert.False(t, ok)
	assert.Equal(t, 5, c.Len())
}
