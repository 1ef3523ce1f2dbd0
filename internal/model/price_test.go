package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceString(t *testing.T) {
	cases := []struct {
		name  string
		price Price
		want  string
	}{
		{"known", KnownPrice(decimal.RequireFromString("1234.5")), "R$ 1234.50"},
		{"options", Price{Kind: PriceOptions}, "Ver Opções"},
		{"unavailable", Price{Kind: PriceUnavailable}, "Indisponível"},
		{"connection error", Price{Kind: PriceConnectionError}, "Erro Conexão"},
		{"unknown", Price{}, "Ver no Site"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.price.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractionResultHasPrice(t *testing.T) {
	if EmptyExtraction().HasPrice() {
		t.Error("extração vazia não tem preço")
	}
	zero := decimal.Zero
	if (ExtractionResult{CurrentPrice: &zero, Available: true}).HasPrice() {
		t.Error("preço zero não conta")
	}
	d := decimal.RequireFromString("10")
	if !(ExtractionResult{CurrentPrice: &d, Available: true}).HasPrice() {
		t.Error("preço positivo conta")
	}
}
