package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product é a entidade persistida do catálogo, identificada pela URL.
// Nunca é apagada, apenas desativada.
type Product struct {
	ProductID   string
	URL         string
	Domain      string
	Title       string
	Description string
	Specs       map[string]string
	Embedding   []float32
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceHistoryPoint é append-only: uma linha por extração bem sucedida.
// É a série temporal usada para calcular a média de referência.
type PriceHistoryPoint struct {
	ProductID string
	Price     decimal.Decimal
	Currency  string
	ScrapedAt time.Time
}

// Alert dispara uma única vez quando o preço extraído fica abaixo do alvo
// e então é desativado; nunca é rearmado.
type Alert struct {
	AlertID     int64
	ProductID   string
	ChatID      int64
	TargetPrice decimal.Decimal
	Active      bool
}
