package search

import (
	"context"
	"log"
	"regexp"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"garimpo/internal/fetch"
	"garimpo/internal/model"
	"garimpo/internal/observability"
	"garimpo/internal/scraper"
)

const (
	// scrapeConcurrency limita o fan-out de fetches de uma busca: custo
	// previsível e nenhum site de terceiro martelado.
	scrapeConcurrency = 5
	maxScrapes        = 5
	maxResults        = 6
)

// Candidate é efêmero: nasce da resposta da API ou do scrape e morre
// quando a busca termina. Nunca é persistido.
type Candidate struct {
	Title         string
	Link          string
	Store         string
	Class         scraper.URLClass
	PriceDetected bool
	Price         model.Price
	OriginalPrice *decimal.Decimal
	Method        string
	Available     bool
}

// Orchestrator combina a API de busca com scraping seletivo: classifica
// cada link antes de gastar rede com ele.
type Orchestrator struct {
	provider Provider
	fetcher  fetch.Doer
	engine   *scraper.Engine
}

func NewOrchestrator(provider Provider, fetcher fetch.Doer, engine *scraper.Engine) *Orchestrator {
	return &Orchestrator{provider: provider, fetcher: fetcher, engine: engine}
}

// Search executa uma busca completa: uma chamada ao provedor, triagem dos
// candidatos, no máximo uma rodada de fetches concorrentes e a ordenação
// final. Falha de um candidato degrada aquela entrada, nunca a resposta.
func (o *Orchestrator) Search(ctx context.Context, query string) ([]Candidate, error) {
	observability.SearchesTotal.Inc()

	resp, err := o.provider.Search(ctx, query)
	if err != nil {
		// única falha que sobe inteira: sem provedor não há busca
		return nil, err
	}

	var candidates []*Candidate

	for _, item := range resp.Shopping {
		c := &Candidate{
			Title:         item.Title,
			Link:          item.Link,
			Store:         orDefault(item.Source, "Shopping"),
			Class:         scraper.URLProduct,
			PriceDetected: true,
			Available:     true,
		}
		if d, ok := scraper.ParsePrice(item.Price); ok {
			c.Price = model.KnownPrice(d)
		}
		candidates = append(candidates, c)
	}

	for _, item := range resp.Organic {
		class := scraper.ClassifyURL(item.Link)
		if class == scraper.URLRejected {
			continue
		}

		c := &Candidate{
			Title:     item.Title,
			Link:      item.Link,
			Store:     orDefault(item.Source, "Web"),
			Class:     class,
			Available: true,
		}

		if class == scraper.URLListing {
			// listagem nunca ganha preço numérico
			c.Price = model.Price{Kind: model.PriceOptions}
			c.PriceDetected = true
		} else if d, ok := DetectSnippetPrice(item.Snippet); ok {
			c.Price = model.KnownPrice(d)
			c.PriceDetected = true
			c.Method = "SNIPPET"
		}

		candidates = append(candidates, c)
	}

	var toScrape []*Candidate
	for _, c := range candidates {
		if !c.PriceDetected && c.Class == scraper.URLProduct {
			toScrape = append(toScrape, c)
		}
		if len(toScrape) == maxScrapes {
			break
		}
	}

	if len(toScrape) > 0 {
		log.Printf("[Orchestrator] raspando %d URLs para %q", len(toScrape), query)
		o.scrapeAll(ctx, toScrape)
	}

	final := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Available {
			continue
		}
		final = append(final, *c)
	}

	sortCandidates(final)

	if len(final) > maxResults {
		final = final[:maxResults]
	}
	return final, nil
}

// scrapeAll roda o lote com largura fixa: canal de jobs + WaitGroup. Cada
// worker escreve só no candidato do seu índice, sem estado compartilhado.
func (o *Orchestrator) scrapeAll(ctx context.Context, batch []*Candidate) {
	jobs := make(chan *Candidate)
	var wg sync.WaitGroup

	for i := 0; i < scrapeConcurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				o.scrapeOne(ctx, c)
			}
		}()
	}

	for _, c := range batch {
		jobs <- c
	}
	close(jobs)
	wg.Wait()
}

func (o *Orchestrator) scrapeOne(ctx context.Context, c *Candidate) {
	resp, err := o.fetcher.Get(ctx, c.Link)
	if err != nil {
		log.Printf("[Orchestrator] falha ao acessar %s: %v", c.Link, err)
		observability.FetchErrorsTotal.Inc()
		c.Price = model.Price{Kind: model.PriceConnectionError}
		return
	}
	if !resp.OK() {
		observability.FetchErrorsTotal.Inc()
		c.Price = model.Price{Kind: model.PriceConnectionError}
		return
	}

	result := o.engine.ExtractPrice(resp.Body, c.Link)
	observability.PagesScrapedTotal.WithLabelValues(result.Source).Inc()

	if !result.Available {
		c.Available = false
		c.Price = model.Price{Kind: model.PriceUnavailable}
		return
	}

	if result.HasPrice() {
		c.Price = model.KnownPrice(*result.CurrentPrice)
		if result.OriginalPrice != nil && result.OriginalPrice.GreaterThan(*result.CurrentPrice) {
			c.OriginalPrice = result.OriginalPrice
		}
		c.Method = result.Source
		return
	}

	// sem preço: o título da página decide entre vitrine e "ver no site"
	if scraper.LooksLikeListing(resp.Body) {
		c.Price = model.Price{Kind: model.PriceOptions}
	} else {
		c.Price = model.Price{Kind: model.PriceUnknown}
	}
}

// Ordem determinística documentada: preços conhecidos (crescente), depois
// listagens, depois "ver no site", conexão com erro por último.
// Indisponíveis já foram descartados antes daqui.
var kindOrder = map[model.PriceKind]int{
	model.PriceKnown:           0,
	model.PriceOptions:         1,
	model.PriceUnknown:         2,
	model.PriceConnectionError: 3,
}

func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		oi, oj := kindOrder[candidates[i].Price.Kind], kindOrder[candidates[j].Price.Kind]
		if oi != oj {
			return oi < oj
		}
		if candidates[i].Price.Kind == model.PriceKnown {
			return candidates[i].Price.Amount.LessThan(candidates[j].Price.Amount)
		}
		return false
	})
}

var snippetPricePattern = regexp.MustCompile(`(?i)R\$\s*\d[\d.,]*`)

// DetectSnippetPrice tenta resolver o preço direto do snippet do resultado
// antes de decidir gastar um fetch.
func DetectSnippetPrice(snippet string) (decimal.Decimal, bool) {
	match := snippetPricePattern.FindString(snippet)
	if match == "" {
		return decimal.Decimal{}, false
	}
	return scraper.ParsePrice(match)
}

func orDefault(v, d string) string {
	if v == "" {
		return d
	}
	return v
}
