package model

import "github.com/shopspring/decimal"

// ExtractionResult é o valor devolvido por qualquer estratégia de scraping.
// Available=false curto-circuita a cadeia: um "indisponível" explícito vale
// mais do que um preço.
type ExtractionResult struct {
	CurrentPrice  *decimal.Decimal
	OriginalPrice *decimal.Decimal
	Available     bool
	Source        string
}

// EmptyExtraction representa "preço desconhecido, página disponível", que
// é um resultado legítimo, não um erro.
func EmptyExtraction() ExtractionResult {
	return ExtractionResult{Available: true, Source: "UNKNOWN"}
}

func (r ExtractionResult) HasPrice() bool {
	return r.CurrentPrice != nil && r.CurrentPrice.Sign() > 0
}
