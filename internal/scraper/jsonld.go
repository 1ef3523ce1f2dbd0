package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"garimpo/internal/model"
)

// JSONLDStrategy lê o markup estruturado de produto/oferta embutido na
// página. É a fonte mais confiável quando existe, por isso abre a cadeia.
type JSONLDStrategy struct{}

func (s *JSONLDStrategy) CanHandle(url string) bool { return true }

func (s *JSONLDStrategy) Extract(doc *goquery.Document) model.ExtractionResult {
	var result model.ExtractionResult
	found := false

	doc.Find(`script[type='application/ld+json']`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}

		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true // markup quebrado, tenta o próximo script
		}

		if list, ok := data.([]any); ok {
			if len(list) == 0 {
				return true
			}
			data = list[0]
		}

		obj, ok := data.(map[string]any)
		if !ok {
			return true
		}

		offer, ok := firstOffer(obj["offers"])
		if !ok {
			return true
		}

		available := true
		if availability, _ := offer["availability"].(string); availability != "" {
			lower := strings.ToLower(availability)
			if strings.Contains(lower, "outofstock") || strings.Contains(lower, "soldout") {
				available = false
			}
		}
		if !available {
			// "indisponível" estruturado é autoritativo, preço não importa
			result = model.ExtractionResult{Available: false, Source: "JSON_LD"}
			found = true
			return false
		}

		current := offerDecimal(offer["price"])
		if current == nil {
			current = offerDecimal(offer["lowPrice"])
		}
		if current == nil {
			return true
		}

		original := offerDecimal(offer["highPrice"])
		if original != nil && original.LessThan(*current) {
			original = nil
		}

		result = model.ExtractionResult{
			CurrentPrice:  current,
			OriginalPrice: original,
			Available:     true,
			Source:        "JSON_LD",
		}
		found = true
		return false
	})

	if !found {
		return model.EmptyExtraction()
	}
	return result
}

func firstOffer(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case []any:
		if len(t) > 0 {
			if offer, ok := t[0].(map[string]any); ok {
				return offer, true
			}
		}
	}
	return nil, false
}

// offerDecimal aceita número ou string: o markup varia entre lojas.
func offerDecimal(v any) *decimal.Decimal {
	switch t := v.(type) {
	case float64:
		d := decimal.NewFromFloat(t)
		if d.Sign() > 0 {
			return &d
		}
	case string:
		if d, ok := ParsePrice(t); ok {
			return &d
		}
	}
	return nil
}
