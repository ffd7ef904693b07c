// internal/presenter/attributes.go
package presenter

import "github.com/javajoker/storefront-catalog/internal/models"

// AttributePair is one attribute name with the value attached to an owner.
type AttributePair struct {
	Name  string
	Value string
}

// FlattenAttributes maps attribute names to values. A repeated name keeps
// the last value.
func FlattenAttributes(pairs []AttributePair) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.Name] = p.Value
	}
	return out
}

func productPairs(links []models.ProductAttributeValue) []AttributePair {
	pairs := make([]AttributePair, 0, len(links))
	for _, link := range links {
		if pair, ok := pairOf(link.AttributeValue); ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

func linePairs(links []models.ProductLineAttributeValue) []AttributePair {
	pairs := make([]AttributePair, 0, len(links))
	for _, link := range links {
		if pair, ok := pairOf(link.AttributeValue); ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}

// pairOf skips links whose value or attribute was not preloaded.
func pairOf(v *models.AttributeValue) (AttributePair, bool) {
	if v == nil || v.Attribute == nil {
		return AttributePair{}, false
	}
	return AttributePair{Name: v.Attribute.Name, Value: v.Value}, true
}
