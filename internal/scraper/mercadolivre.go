package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"garimpo/internal/model"
)

var mlPausedPattern = regexp.MustCompile(`(?i)Anúncio pausado|Finalizado`)

// MercadoLivreStrategy lê o container principal de preço do Mercado Livre
// e o valor original riscado quando há promoção. Anúncio pausado ou
// finalizado encerra a cadeia sem preço.
type MercadoLivreStrategy struct{}

func (s *MercadoLivreStrategy) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "mercadolivre")
}

func (s *MercadoLivreStrategy) Extract(doc *goquery.Document) model.ExtractionResult {
	if mlPausedPattern.MatchString(doc.Text()) {
		return model.ExtractionResult{Available: false, Source: "ML_HTML"}
	}

	var current, original *decimal.Decimal

	container := doc.Find(".ui-pdp-price__main-container").First()
	if container.Length() > 0 {
		if old := container.Find(".ui-pdp-price__original-value").First(); old.Length() > 0 {
			original = mlAmount(old)
		}
		container.Find(".andes-money-amount").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if sel.Closest(".ui-pdp-price__original-value").Length() > 0 {
				return true // valor riscado, não é o preço atual
			}
			if d := mlAmount(sel); d != nil {
				current = d
				return false
			}
			return true
		})
	}
	if current != nil && original != nil && original.LessThan(*current) {
		original = nil
	}

	return model.ExtractionResult{
		CurrentPrice:  current,
		OriginalPrice: original,
		Available:     true,
		Source:        "ML_HTML",
	}
}

// mlAmount monta o valor a partir do par fração/centavos. A fração usa
// ponto como separador de milhar ("2.499") e os centavos vêm em um span
// próprio, então ParsePrice não serve aqui.
func mlAmount(sel *goquery.Selection) *decimal.Decimal {
	fraction := strings.TrimSpace(sel.Find(".andes-money-amount__fraction").First().Text())
	if fraction == "" {
		return nil
	}
	clean := strings.ReplaceAll(fraction, ".", "")
	if cents := strings.TrimSpace(sel.Find(".andes-money-amount__cents").First().Text()); cents != "" {
		clean += "." + cents
	}
	d, err := decimal.NewFromString(clean)
	if err != nil || d.Sign() <= 0 {
		return nil
	}
	return &d
}
