package model

import "github.com/shopspring/decimal"

// PriceKind identifica o estado de um preço de candidato. Só PriceKnown
// carrega um valor numérico; os demais são sentinelas de exibição.
type PriceKind int

const (
	PriceUnknown PriceKind = iota
	PriceKnown
	PriceOptions
	PriceUnavailable
	PriceConnectionError
)

// Price é a variante etiquetada usada nos resultados de busca no lugar de
// misturar strings e números num campo só.
type Price struct {
	Kind   PriceKind
	Amount decimal.Decimal // válido apenas quando Kind == PriceKnown
}

func KnownPrice(amount decimal.Decimal) Price {
	return Price{Kind: PriceKnown, Amount: amount}
}

func (p Price) String() string {
	switch p.Kind {
	case PriceKnown:
		return "R$ " + p.Amount.StringFixed(2)
	case PriceOptions:
		return "Ver Opções"
	case PriceUnavailable:
		return "Indisponível"
	case PriceConnectionError:
		return "Erro Conexão"
	default:
		return "Ver no Site"
	}
}
