package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var listingTitleIndicators = []string{
	"departamento", "categoria", "produtos", "seleção", "melhores", "loja",
}

// LooksLikeListing inspeciona o <title> de uma página que não rendeu preço:
// títulos de vitrine indicam "ver opções" em vez de "ver no site".
func LooksLikeListing(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	title := strings.ToLower(doc.Find("title").First().Text())
	if title == "" {
		return false
	}
	for _, ind := range listingTitleIndicators {
		if strings.Contains(title, ind) {
			return true
		}
	}
	return false
}
