package scraper

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"garimpo/internal/model"
)

type stubStrategy struct {
	handles bool
	result  model.ExtractionResult
	calls   int
}

func (s *stubStrategy) CanHandle(url string) bool { return s.handles }

func (s *stubStrategy) Extract(doc *goquery.Document) model.ExtractionResult {
	s.calls++
	return s.result
}

func priced(v string) model.ExtractionResult {
	d := decimal.RequireFromString(v)
	return model.ExtractionResult{CurrentPrice: &d, Available: true, Source: "STUB"}
}

func TestEngineChain(t *testing.T) {
	t.Run("first price wins", func(t *testing.T) {
		first := &stubStrategy{handles: true, result: priced("10")}
		second := &stubStrategy{handles: true, result: priced("20")}
		engine := NewEngineWith(first, second)

		result := engine.ExtractPrice("<html></html>", "https://loja.com.br/p/1")
		if !result.HasPrice() || result.CurrentPrice.String() != "10" {
			t.Fatalf("esperava preço 10, veio %+v", result)
		}
		if second.calls != 0 {
			t.Errorf("segunda estratégia foi consultada %d vezes", second.calls)
		}
	})

	t.Run("unavailable short-circuits without price", func(t *testing.T) {
		unavailable := &stubStrategy{handles: true, result: model.ExtractionResult{Available: false, Source: "JSON_LD"}}
		fallback := &stubStrategy{handles: true, result: priced("99")}
		engine := NewEngineWith(unavailable, fallback)

		result := engine.ExtractPrice("<html></html>", "https://loja.com.br/p/1")
		if result.Available {
			t.Fatal("esperava is_available=false")
		}
		if result.HasPrice() {
			t.Error("indisponível não deve carregar preço")
		}
		if fallback.calls != 0 {
			t.Errorf("estratégia seguinte foi consultada %d vezes após indisponível", fallback.calls)
		}
	})

	t.Run("no price falls through to next", func(t *testing.T) {
		empty := &stubStrategy{handles: true, result: model.EmptyExtraction()}
		last := &stubStrategy{handles: true, result: priced("55.5")}
		engine := NewEngineWith(empty, last)

		result := engine.ExtractPrice("<html></html>", "https://loja.com.br/p/1")
		if !result.HasPrice() || result.CurrentPrice.String() != "55.5" {
			t.Fatalf("esperava fallback com 55.5, veio %+v", result)
		}
	})

	t.Run("skips strategies that cannot handle the url", func(t *testing.T) {
		skipped := &stubStrategy{handles: false, result: priced("1")}
		used := &stubStrategy{handles: true, result: priced("2")}
		engine := NewEngineWith(skipped, used)

		result := engine.ExtractPrice("<html></html>", "https://loja.com.br/p/1")
		if result.CurrentPrice.String() != "2" {
			t.Fatalf("esperava 2, veio %s", result.CurrentPrice)
		}
		if skipped.calls != 0 {
			t.Error("estratégia incompatível não deveria ser chamada")
		}
	})

	t.Run("empty result when nothing matches", func(t *testing.T) {
		engine := NewEngineWith(&stubStrategy{handles: true, result: model.EmptyExtraction()})

		result := engine.ExtractPrice("<html></html>", "https://loja.com.br/p/1")
		if result.HasPrice() {
			t.Error("não deveria ter preço")
		}
		if !result.Available {
			t.Error("resultado vazio é 'disponível, preço desconhecido'")
		}
	})
}

func TestEngineIdempotence(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@type":"Product","offers":{"price":"1234.56","highPrice":"1500.00","availability":"https://schema.org/InStock"}}
	</script></head><body></body></html>`
	engine := NewEngine()

	first := engine.ExtractPrice(html, "https://loja.com.br/p/1")
	second := engine.ExtractPrice(html, "https://loja.com.br/p/1")

	if !first.HasPrice() || !second.HasPrice() {
		t.Fatal("as duas extrações deveriam render preço")
	}
	if !first.CurrentPrice.Equal(*second.CurrentPrice) || first.Source != second.Source {
		t.Errorf("extrações divergiram: %+v vs %+v", first, second)
	}
	if first.OriginalPrice == nil || !first.OriginalPrice.Equal(*second.OriginalPrice) {
		t.Errorf("preço original divergiu: %+v vs %+v", first.OriginalPrice, second.OriginalPrice)
	}
}
