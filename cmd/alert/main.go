package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"garimpo/internal/catalog"
	"garimpo/internal/config"
	"garimpo/internal/db"
	"garimpo/internal/embeddings"
	"garimpo/internal/repository"
)

// go run cmd/alert/main.go -url="https://..." -target=399.90 -chat=123456
func main() {
	rawURL := flag.String("url", "", "URL do produto vigiado")
	target := flag.String("target", "", "Preço alvo (ex: 399.90)")
	chatID := flag.Int64("chat", 0, "Chat que recebe a notificação")
	flag.Parse()

	if *rawURL == "" || *target == "" || *chatID == 0 {
		log.Fatal("Informe -url, -target e -chat")
	}

	targetPrice, err := decimal.NewFromString(*target)
	if err != nil || targetPrice.Sign() <= 0 {
		log.Fatalf("Preço alvo inválido: %s", *target)
	}

	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no banco de dados: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Não foi possível criar o pool de conexões: %v", err)
	}
	defer pool.Close()

	svc := catalog.NewService(
		&repository.CatalogRepository{DB: pool},
		embeddings.NewClient(cfg.OpenAIKey),
	)

	// registra sem preço: o watchdog preenche o histórico a cada ciclo
	productID, err := svc.Register(ctx, *rawURL, "Tracking Request", nil, "User Watchdog Request", nil)
	if err != nil {
		log.Fatalf("Erro ao registrar produto: %v", err)
	}

	alertRepo := &repository.AlertRepository{DB: sqlDB}
	alertID, err := alertRepo.Create(ctx, productID, *chatID, targetPrice)
	if err != nil {
		log.Fatalf("Erro ao criar alerta: %v", err)
	}

	fmt.Printf("Vigilância iniciada. Alerta %d definido para R$ %s.\n", alertID, targetPrice.StringFixed(2))
}
