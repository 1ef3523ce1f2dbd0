package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"garimpo/internal/fetch"
	"garimpo/internal/model"
	"garimpo/internal/scraper"
)

type fakeProvider struct {
	resp *Response
	err  error
}

func (f *fakeProvider) Search(_ context.Context, _ string) (*Response, error) {
	return f.resp, f.err
}

// fakeDoer serve páginas fixas por URL e registra cada acesso; os workers
// chamam Get em paralelo, então tudo fica atrás do mutex.
type fakeDoer struct {
	mu    sync.Mutex
	pages map[string]*fetch.Result
	errs  map[string]error
	calls []string
}

func (f *fakeDoer) Get(_ context.Context, url string) (*fetch.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if r, ok := f.pages[url]; ok {
		return r, nil
	}
	return &fetch.Result{StatusCode: 404}, nil
}

func (f *fakeDoer) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.calls...)
	sort.Strings(out)
	return out
}

func ogPage(price string) *fetch.Result {
	return &fetch.Result{
		StatusCode: 200,
		Body: fmt.Sprintf(`<html><head><title>Produto</title>
			<meta property="product:price:amount" content="%s"></head></html>`, price),
	}
}

func organic(link, snippet string) Item {
	return Item{Title: "resultado", Link: link, Snippet: snippet}
}

func TestSearchTriage(t *testing.T) {
	scrapeA := "https://loja.com.br/p/notebook-dell"
	scrapeB := "https://loja.com.br/p/notebook-acer"
	scrapeC := "https://loja.com.br/p/notebook-lenovo"

	provider := &fakeProvider{resp: &Response{
		Shopping: []Item{
			{Title: "Notebook", Link: "https://loja.com.br/p/notebook", Source: "Loja", Price: "R$ 3.499,00"},
		},
		Organic: []Item{
			organic("https://loja.com.br/login", ""),
			organic("https://loja.com.br/busca?termo=notebook", ""),
			organic("https://loja.com.br/p/notebook-hp", "Notebook HP por R$ 2.499,90 à vista"),
			organic(scrapeA, "sem preço no snippet"),
			organic(scrapeB, ""),
			organic(scrapeC, ""),
		},
	}}
	doer := &fakeDoer{pages: map[string]*fetch.Result{
		scrapeA: ogPage("2799.00"),
		scrapeB: ogPage("2599.00"),
		scrapeC: ogPage("2699.00"),
	}}

	o := NewOrchestrator(provider, doer, scraper.NewEngine())
	results, err := o.Search(context.Background(), "notebook")
	if err != nil {
		t.Fatal(err)
	}

	// só as três URLs de produto sem preço detectado gastam fetch
	want := []string{scrapeB, scrapeA, scrapeC}
	sort.Strings(want)
	got := doer.called()
	if len(got) != len(want) {
		t.Fatalf("fetches = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fetches = %v, want %v", got, want)
		}
	}

	for _, r := range results {
		if r.Link == "https://loja.com.br/login" {
			t.Error("link rejeitado vazou para o resultado")
		}
	}

	byLink := make(map[string]Candidate)
	for _, r := range results {
		byLink[r.Link] = r
	}

	if c := byLink["https://loja.com.br/busca?termo=notebook"]; c.Price.Kind != model.PriceOptions {
		t.Errorf("listagem deveria ser Ver Opções, veio %v", c.Price.Kind)
	}
	if c := byLink["https://loja.com.br/p/notebook-hp"]; c.Price.Kind != model.PriceKnown || c.Method != "SNIPPET" {
		t.Errorf("preço do snippet não foi aproveitado: %+v", c)
	} else if c.Price.Amount.String() != "2499.9" {
		t.Errorf("preço do snippet = %s", c.Price.Amount)
	}
	if c := byLink[scrapeA]; c.Price.Kind != model.PriceKnown || c.Method != "OPEN_GRAPH" {
		t.Errorf("scrape não rendeu preço: %+v", c)
	}
}

func TestSearchOrdering(t *testing.T) {
	errLink := "https://loja.com.br/p/fora-do-ar"
	unknownLink := "https://loja.com.br/p/sem-preco"

	provider := &fakeProvider{resp: &Response{
		Shopping: []Item{
			{Title: "caro", Link: "https://loja.com.br/p/caro", Price: "R$ 300,00"},
			{Title: "barato", Link: "https://loja.com.br/p/barato", Price: "R$ 100,00"},
			{Title: "médio", Link: "https://loja.com.br/p/medio", Price: "R$ 200,00"},
		},
		Organic: []Item{
			organic("https://loja.com.br/categoria/notebooks", ""),
			organic(unknownLink, ""),
			organic(errLink, ""),
		},
	}}
	doer := &fakeDoer{
		pages: map[string]*fetch.Result{
			unknownLink: {StatusCode: 200, Body: `<html><head><title>Produto sem preço</title></head></html>`},
		},
		errs: map[string]error{errLink: errors.New("timeout")},
	}

	o := NewOrchestrator(provider, doer, scraper.NewEngine())
	results, err := o.Search(context.Background(), "notebook")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 6 {
		t.Fatalf("esperava 6 resultados, veio %d", len(results))
	}

	wantKinds := []model.PriceKind{
		model.PriceKnown, model.PriceKnown, model.PriceKnown,
		model.PriceOptions, model.PriceUnknown, model.PriceConnectionError,
	}
	for i, k := range wantKinds {
		if results[i].Price.Kind != k {
			t.Errorf("posição %d: kind = %v, want %v", i, results[i].Price.Kind, k)
		}
	}
	// preços conhecidos em ordem crescente
	if results[0].Price.Amount.String() != "100" || results[2].Price.Amount.String() != "300" {
		t.Errorf("ordem de preço errada: %s ... %s", results[0].Price.Amount, results[2].Price.Amount)
	}
}

func TestSearchDropsUnavailable(t *testing.T) {
	outLink := "https://loja.com.br/p/esgotado"
	provider := &fakeProvider{resp: &Response{
		Organic: []Item{organic(outLink, "")},
	}}
	doer := &fakeDoer{pages: map[string]*fetch.Result{
		outLink: {StatusCode: 200, Body: `<html><script type="application/ld+json">
			{"offers":{"price":"10.00","availability":"https://schema.org/OutOfStock"}}
		</script></html>`},
	}}

	o := NewOrchestrator(provider, doer, scraper.NewEngine())
	results, err := o.Search(context.Background(), "esgotado")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("produto indisponível deveria ser descartado, veio %+v", results)
	}
}

func TestSearchScrapeCap(t *testing.T) {
	var items []Item
	for i := 0; i < 7; i++ {
		items = append(items, organic(fmt.Sprintf("https://loja.com.br/p/produto-%d", i), ""))
	}
	provider := &fakeProvider{resp: &Response{Organic: items}}
	doer := &fakeDoer{}

	o := NewOrchestrator(provider, doer, scraper.NewEngine())
	if _, err := o.Search(context.Background(), "produto"); err != nil {
		t.Fatal(err)
	}
	if got := len(doer.called()); got != 5 {
		t.Errorf("fetches = %d, o teto é 5", got)
	}
}

func TestSearchResultCap(t *testing.T) {
	var items []Item
	for i := 0; i < 9; i++ {
		items = append(items, Item{
			Title: fmt.Sprintf("item %d", i),
			Link:  fmt.Sprintf("https://loja.com.br/p/item-%d", i),
			Price: fmt.Sprintf("R$ %d,00", 100+i),
		})
	}
	provider := &fakeProvider{resp: &Response{Shopping: items}}

	o := NewOrchestrator(provider, &fakeDoer{}, scraper.NewEngine())
	results, err := o.Search(context.Background(), "item")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 6 {
		t.Errorf("esperava corte em 6, veio %d", len(results))
	}
}

func TestSearchProviderFailure(t *testing.T) {
	o := NewOrchestrator(&fakeProvider{err: errors.New("api fora do ar")}, &fakeDoer{}, scraper.NewEngine())
	if _, err := o.Search(context.Background(), "qualquer"); err == nil {
		t.Fatal("falha do provedor deveria subir inteira")
	}
}

func TestDetectSnippetPrice(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Por apenas R$ 1.299,90 à vista", "1299.9", true},
		{"r$ 50", "50", true},
		{"frete grátis acima de 100 reais", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := DetectSnippetPrice(tc.in)
		if ok != tc.ok {
			t.Errorf("DetectSnippetPrice(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && got.String() != tc.want {
			t.Errorf("DetectSnippetPrice(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
