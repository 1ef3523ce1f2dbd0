package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"garimpo/internal/model"
)

// OpenGraphStrategy é o último recurso: a meta tag genérica de preço que
// muitas lojas expõem para redes sociais.
type OpenGraphStrategy struct{}

func (s *OpenGraphStrategy) CanHandle(url string) bool { return true }

func (s *OpenGraphStrategy) Extract(doc *goquery.Document) model.ExtractionResult {
	result := model.ExtractionResult{Available: true, Source: "OPEN_GRAPH"}

	meta := doc.Find(`meta[property='product:price:amount']`).First()
	if content, ok := meta.Attr("content"); ok {
		if d, parsed := ParsePrice(content); parsed {
			result.CurrentPrice = &d
		}
	}

	return result
}
