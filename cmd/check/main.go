package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"garimpo/internal/catalog"
	"garimpo/internal/config"
	"garimpo/internal/db"
	"garimpo/internal/discount"
	"garimpo/internal/embeddings"
	"garimpo/internal/fetch"
	"garimpo/internal/repository"
	"garimpo/internal/scraper"
)

// go run cmd/check/main.go -url="https://www.amazon.com.br/dp/B0ABC123"
func main() {
	rawURL := flag.String("url", "", "URL do produto para checagem")
	title := flag.String("title", "Tracking Request", "Título do produto")
	flag.Parse()

	if *rawURL == "" {
		log.Fatal("Informe a URL com -url")
	}

	cfg := config.Load()
	ctx := context.Background()

	fetcher := fetch.NewClient(time.Duration(cfg.FetchTimeout) * time.Second)
	resp, err := fetcher.Get(ctx, *rawURL)
	if err != nil {
		log.Fatalf("Falha de conexão: %v", err)
	}
	if !resp.OK() {
		log.Fatalf("HTTP %d", resp.StatusCode)
	}

	result := scraper.NewEngine().ExtractPrice(resp.Body, *rawURL)
	if !result.Available {
		fmt.Println("Status: Indisponível/Esgotado")
		return
	}
	if !result.HasPrice() {
		fmt.Println("Não foi possível extrair o preço. A estrutura pode ter mudado ou o site não é suportado.")
		return
	}

	fmt.Printf("Preço: R$ %s | Fonte: %s\n", result.CurrentPrice.StringFixed(2), result.Source)
	if result.OriginalPrice != nil {
		fmt.Printf("Original: R$ %s\n", result.OriginalPrice.StringFixed(2))
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Não foi possível criar o pool de conexões: %v", err)
	}
	defer pool.Close()

	repo := &repository.CatalogRepository{DB: pool}
	svc := catalog.NewService(repo, embeddings.NewClient(cfg.OpenAIKey))

	productID, err := svc.Register(ctx, *rawURL, *title, result.CurrentPrice, "", nil)
	if err != nil {
		log.Printf("Falha ao registrar no catálogo: %v", err)
		return
	}

	// o ponto recém gravado fica fora da janela da média (exclusão de 1
	// minuto), então a avaliação não se compara consigo mesma
	verdict, err := discount.NewEngine(repo).Evaluate(ctx, productID, *result.CurrentPrice)
	if err != nil {
		log.Printf("Falha ao avaliar desconto: %v", err)
		return
	}
	fmt.Println(verdict.Message)
}
