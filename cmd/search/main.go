package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"garimpo/internal/catalog"
	"garimpo/internal/config"
	"garimpo/internal/db"
	"garimpo/internal/embeddings"
	"garimpo/internal/fetch"
	"garimpo/internal/repository"
	"garimpo/internal/scraper"
	"garimpo/internal/search"
)

// go run cmd/search/main.go -mode=web -q="ar condicionado 12000 btus"
// go run cmd/search/main.go -mode=local -q="ar condicionado 12000 btus"
func main() {
	mode := flag.String("mode", "web", "Modo de execução: 'web' ou 'local'")
	query := flag.String("q", "", "Termo de busca")
	limit := flag.Int("limit", 5, "Limite de resultados do catálogo")
	flag.Parse()

	if *query == "" {
		log.Fatal("Informe a busca com -q")
	}

	cfg := config.Load()
	ctx := context.Background()

	if *mode == "local" {
		searchLocal(ctx, cfg, *query, *limit)
		return
	}

	orchestrator := search.NewOrchestrator(
		search.NewSerperClient(cfg.SerperAPIKey),
		fetch.NewClient(time.Duration(cfg.FetchTimeout)*time.Second),
		scraper.NewEngine(),
	)

	results, err := orchestrator.Search(ctx, *query)
	if err != nil {
		log.Fatalf("Erro na busca: %v", err)
	}

	printJSON(search.RenderRows(results))
}

// searchLocal consulta o catálogo com fusão híbrida antes de ir à web.
func searchLocal(ctx context.Context, cfg *config.Config, query string, limit int) {
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Não foi possível criar o pool de conexões: %v", err)
	}
	defer pool.Close()

	svc := catalog.NewService(
		&repository.CatalogRepository{DB: pool},
		embeddings.NewClient(cfg.OpenAIKey),
	)

	results, err := svc.SearchHybrid(ctx, query, limit)
	if err != nil {
		log.Fatalf("Erro na busca local: %v", err)
	}
	if len(results) == 0 {
		fmt.Println("Nenhum resultado no catálogo local.")
		return
	}

	printJSON(results)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Erro ao serializar resultado: %v", err)
	}
	fmt.Println(string(out))
}
