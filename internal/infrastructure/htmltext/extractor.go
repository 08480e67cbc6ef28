// Package htmltext flattens a product card's HTML into the text fields the
// material engine reads.
package htmltext

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ecoscan/backend/internal/domain"
)

// Selectors lists the CSS selectors tried for each product field, most specific first
type Selectors struct {
	Title       []string
	Description []string
	Features    []string
	Materials   []string // containers scanned for material indicator text
}

// DefaultSelectors covers schema.org microdata and the common storefront class names
func DefaultSelectors() Selectors {
	return Selectors{
		Title: []string{
			"[itemprop='name']", ".product-title", ".product-name", "h1", "h2", "h3", "title",
		},
		Description: []string{
			"[itemprop='description']", ".product-description", ".description", "[class*='description']",
		},
		Features: []string{
			".feature-bullets li", ".product-features li", "[class*='feature'] li", "ul li",
		},
		Materials: []string{
			"table tr", "dl", "li", "p", "span", "td",
		},
	}
}

// materialIndicators mark an element whose text describes composition
var materialIndicators = []string{
	"material", "composition", "made of", "made from", "constructed from", "built with",
	"fabricated from", "components", "ingredient", "fabric", "construction", "shell",
	"outer", "inner", "lining",
}

// maxMaterialFragment bounds a single material fragment; longer elements are
// layout containers, not attribute rows
const maxMaterialFragment = 300

// Extractor implements domain.ProductTextExtractor on top of goquery
type Extractor struct {
	selectors Selectors
}

// NewExtractor creates an extractor with the given selectors
func NewExtractor(selectors Selectors) *Extractor {
	return &Extractor{selectors: selectors}
}

// Extract parses an HTML fragment and returns its title, description, feature
// bullets and material fragments. A fragment with no recognizable structure
// yields its visible text as the description.
func (e *Extractor) Extract(html string) (domain.ProductText, error) {
	if strings.TrimSpace(html) == "" {
		return domain.ProductText{}, fmt.Errorf("%w: empty document", domain.ErrInvalidHTML)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.ProductText{}, fmt.Errorf("%w: %v", domain.ErrInvalidHTML, err)
	}

	// Remove elements that never hold visible product text
	doc.Find("script, style, noscript, template, svg").Remove()

	product := domain.ProductText{
		Title:       firstText(doc.Selection, e.selectors.Title),
		Description: firstText(doc.Selection, e.selectors.Description),
		Features:    allTexts(doc.Selection, e.selectors.Features),
		Materials:   materialFragments(doc.Selection, e.selectors.Materials),
	}

	if product.Description == "" {
		if meta, ok := doc.Find("meta[name='description']").Attr("content"); ok {
			product.Description = collapse(meta)
		}
	}

	if product.Description == "" && len(product.Features) == 0 && len(product.Materials) == 0 {
		body := spacedText(doc.Selection)
		if body != product.Title {
			product.Description = body
		}
	}

	return product, nil
}

// firstText returns the first non-empty text among the selectors
func firstText(root *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		var found string
		root.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = spacedText(s)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// allTexts collects unique non-empty texts from the first selector that matches anything
func allTexts(root *goquery.Selection, selectors []string) []string {
	for _, sel := range selectors {
		var out []string
		seen := make(map[string]bool)
		root.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := spacedText(s)
			if text != "" && !seen[text] {
				seen[text] = true
				out = append(out, text)
			}
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// materialFragments keeps the short elements that mention a material indicator.
// A fragment already contained in an earlier one is skipped.
func materialFragments(root *goquery.Selection, selectors []string) []string {
	var out []string
	for _, sel := range selectors {
		root.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := spacedText(s)
			if text == "" || len(text) > maxMaterialFragment || !mentionsMaterial(text) {
				return
			}
			for _, existing := range out {
				if strings.Contains(existing, text) {
					return
				}
			}
			out = append(out, text)
		})
	}
	return out
}

func mentionsMaterial(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range materialIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// spacedText joins the text nodes under s with spaces so adjacent cells such as
// <th>Material</th><td>Cotton</td> do not run together
func spacedText(s *goquery.Selection) string {
	var parts []string
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			parts = append(parts, child.Text())
			return
		}
		parts = append(parts, spacedText(child))
	})
	return collapse(strings.Join(parts, " "))
}

// collapse joins all whitespace runs into single spaces
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
