package discount

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Janela da média de referência: 30 dias atrás até 1 minuto atrás. A
// exclusão do último minuto evita comparar a observação nova com ela mesma
// quando acabou de ser persistida.
const (
	baselineWindow  = 30 * 24 * time.Hour
	recentExclusion = time.Minute
)

// Classification separa markdown real de variação comum e de preço inflado.
type Classification int

const (
	InsufficientHistory Classification = iota
	GenuineOffer
	NormalVariance
	Inflated
)

var genuineThreshold = decimal.NewFromFloat(0.15)

// Verdict é o resultado da avaliação de autenticidade de um desconto.
type Verdict struct {
	Classification Classification
	IsRealOffer    bool
	Baseline       decimal.Decimal
	// Percent é o desconto em pontos percentuais com 2 casas; negativo
	// significa preço acima da média.
	Percent decimal.Decimal
	Message string
}

// HistoryStore é a fatia do catálogo que o motor consome.
type HistoryStore interface {
	AveragePriceSince(ctx context.Context, productID string, from, until time.Time) (*decimal.Decimal, error)
}

type Engine struct {
	store HistoryStore
	now   func() time.Time
}

func NewEngine(store HistoryStore) *Engine {
	return &Engine{store: store, now: time.Now}
}

// Evaluate compara o preço observado com a média dos últimos 30 dias.
// Desconto acima de 15% é oferta de verdade; até 15% é variação normal;
// zero ou negativo é aumento disfarçado. Sem histórico não há veredito.
func (e *Engine) Evaluate(ctx context.Context, productID string, current decimal.Decimal) (Verdict, error) {
	now := e.now()
	baseline, err := e.store.AveragePriceSince(ctx, productID, now.Add(-baselineWindow), now.Add(-recentExclusion))
	if err != nil {
		return Verdict{}, err
	}

	if baseline == nil || baseline.Sign() <= 0 {
		return Verdict{
			Classification: InsufficientHistory,
			IsRealOffer:    false,
			Message:        "Histórico insuficiente para avaliar a oferta.",
		}, nil
	}

	// discount_ratio = 1 - atual/média
	ratio := decimal.NewFromInt(1).Sub(current.DivRound(*baseline, 8))
	percent := ratio.Mul(decimal.NewFromInt(100))
	label := percent.Abs().StringFixed(1) // 1 casa para mensagem

	v := Verdict{
		Baseline: *baseline,
		Percent:  percent.Round(2),
	}

	switch {
	case ratio.GreaterThan(genuineThreshold):
		v.Classification = GenuineOffer
		v.IsRealOffer = true
		v.Message = fmt.Sprintf("Oferta real: %s%% abaixo da média dos últimos 30 dias (R$ %s).", label, baseline.StringFixed(2))
	case ratio.Sign() > 0:
		v.Classification = NormalVariance
		v.Message = fmt.Sprintf("Variação normal: %s%% abaixo da média dos últimos 30 dias (R$ %s).", label, baseline.StringFixed(2))
	default:
		v.Classification = Inflated
		v.Message = fmt.Sprintf("Cuidado: preço %s%% acima da média dos últimos 30 dias (R$ %s).", label, baseline.StringFixed(2))
	}

	return v, nil
}
