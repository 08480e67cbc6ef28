package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialNormalizer_Normalize(t *testing.T) {
	n := NewMaterialNormalizer(testLexicon(t))

	tests := []struct {
		name      string
		candidate string
		fullText  string
		want      string
	}{
		{name: "lower-cases", candidate: "Bamboo", fullText: "", want: "bamboo"},
		{name: "strips fillers", candidate: "made from the cotton", fullText: "", want: "cotton"},
		{name: "joins after filler removal", candidate: "cotton and  wool", fullText: "", want: "cotton wool"},
		{name: "steel with stainless context", candidate: "Steel", fullText: "stainless steel bottle", want: "stainless steel"},
		{name: "steel without context", candidate: "steel", fullText: "carbon steel pan", want: "steel"},
		{name: "organic cotton", candidate: "organic", fullText: "100% organic cotton", want: "organic cotton"},
		{name: "organic alone", candidate: "organic", fullText: "organic soap", want: "organic"},
		{name: "recycled polyester wins", candidate: "recycled", fullText: "recycled polyester and recycled plastic", want: "recycled polyester"},
		{name: "recycled plastic", candidate: "recycled", fullText: "recycled plastic bottle", want: "recycled plastic"},
		{name: "only fillers", candidate: "and the", fullText: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.candidate, tt.fullText))
		})
	}
}

func TestMaterialNormalizer_Idempotent(t *testing.T) {
	n := NewMaterialNormalizer(testLexicon(t))
	text := "stainless steel with recycled polyester and organic cotton"

	for _, candidate := range []string{"steel", "organic", "recycled", "made of the steel", "Cotton And Wool"} {
		once := n.Normalize(candidate, text)
		assert.Equal(t, once, n.Normalize(once, text), candidate)
	}
}
