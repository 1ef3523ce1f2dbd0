package scraper

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"garimpo/internal/model"
)

// Strategy é uma forma de arrancar preço e disponibilidade de uma página.
type Strategy interface {
	CanHandle(url string) bool
	Extract(doc *goquery.Document) model.ExtractionResult
}

// Engine percorre as estratégias em ordem de confiabilidade. A primeira
// que devolver preço ou um "indisponível" explícito encerra a cadeia.
type Engine struct {
	strategies []Strategy
}

// NewEngine monta a cadeia padrão: dados estruturados primeiro, seletores
// específicos de marketplace depois, metadado genérico por último.
func NewEngine() *Engine {
	return NewEngineWith(
		&JSONLDStrategy{},
		&AmazonStrategy{},
		&MercadoLivreStrategy{},
		&OpenGraphStrategy{},
	)
}

func NewEngineWith(strategies ...Strategy) *Engine {
	return &Engine{strategies: strategies}
}

// ExtractPrice faz o parse do HTML uma única vez e aplica a cadeia. Quando
// nenhuma estratégia encontra preço o resultado vazio ("preço desconhecido,
// disponível") não é erro.
func (e *Engine) ExtractPrice(html, url string) model.ExtractionResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("[Scraper] falha no parse de %s: %v", url, err)
		return model.EmptyExtraction()
	}
	return e.extract(doc, url)
}

func (e *Engine) extract(doc *goquery.Document, url string) model.ExtractionResult {
	for _, s := range e.strategies {
		if !s.CanHandle(url) {
			continue
		}
		result := s.Extract(doc)
		if result.HasPrice() || !result.Available {
			return result
		}
	}
	return model.EmptyExtraction()
}
