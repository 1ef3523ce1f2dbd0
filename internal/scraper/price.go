package scraper

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converte um preço em texto livre ("R$ 1.234,56", "1234.56",
// "R$  50,00") em decimal exato. Se houver vírgula ela é o separador
// decimal e os pontos são milhar. Zero ou negativo não é oferta: retorna
// false, como qualquer texto imprestável.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			sb.WriteRune(r)
		}
	}
	clean := sb.String()
	if clean == "" {
		return decimal.Decimal{}, false
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil || d.Sign() <= 0 {
		return decimal.Decimal{}, false
	}
	return d, true
}
