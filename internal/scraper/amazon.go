package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"garimpo/internal/model"
)

// AmazonStrategy conhece as regiões fixas de preço da Amazon: o preço
// atual fora do bloco riscado e o "de" dentro dele.
type AmazonStrategy struct{}

func (s *AmazonStrategy) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "amazon")
}

func (s *AmazonStrategy) Extract(doc *goquery.Document) model.ExtractionResult {
	if div := doc.Find("#availability").First(); div.Length() > 0 {
		text := strings.ToLower(div.Text())
		if strings.Contains(text, "indisponível") || strings.Contains(text, "não disponível") {
			return model.ExtractionResult{Available: false, Source: "AMAZON_HTML"}
		}
	} else if strings.Contains(strings.ToLower(doc.Text()), "atualmente indisponível") {
		return model.ExtractionResult{Available: false, Source: "AMAZON_HTML"}
	}

	var current, original *decimal.Decimal

	if sel := doc.Find(".a-price:not(.a-text-price) .a-offscreen").First(); sel.Length() > 0 {
		if d, ok := ParsePrice(sel.Text()); ok {
			current = &d
		}
	}
	if sel := doc.Find(".a-price.a-text-price .a-offscreen").First(); sel.Length() > 0 {
		if d, ok := ParsePrice(sel.Text()); ok {
			original = &d
		}
	}
	if current != nil && original != nil && original.LessThan(*current) {
		original = nil
	}

	return model.ExtractionResult{
		CurrentPrice:  current,
		OriginalPrice: original,
		Available:     true,
		Source:        "AMAZON_HTML",
	}
}
