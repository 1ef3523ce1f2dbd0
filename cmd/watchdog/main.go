package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"garimpo/internal/catalog"
	"garimpo/internal/config"
	"garimpo/internal/db"
	"garimpo/internal/embeddings"
	"garimpo/internal/fetch"
	"garimpo/internal/notify"
	"garimpo/internal/observability"
	"garimpo/internal/repository"
	"garimpo/internal/scraper"
	"garimpo/internal/watchdog"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	observability.Start(cfg.MetricsPort)

	sqlDB, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Erro ao conectar no banco de dados: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Não foi possível criar o pool de conexões: %v", err)
	}
	defer pool.Close()

	notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalf("Erro ao inicializar o Telegram: %v", err)
	}

	alertRepo := &repository.AlertRepository{DB: sqlDB}
	catalogRepo := &repository.CatalogRepository{DB: pool}
	catalogSvc := catalog.NewService(catalogRepo, embeddings.NewClient(cfg.OpenAIKey))

	interval := time.Duration(cfg.WatchInterval) * time.Minute
	service := watchdog.New(
		alertRepo,
		catalogSvc,
		scraper.NewEngine(),
		fetch.NewClient(time.Duration(cfg.FetchTimeout)*time.Second),
		notifier,
	)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("REDIS_URL inválida: %v", err)
		}
		service.WithLock(&watchdog.RedisLock{Client: redis.NewClient(opts)}, interval)
	}

	log.Printf("Watchdog iniciado. Verificando alertas a cada %v", interval)

	// primeira verificação imediata, depois o ticker
	if err := service.RunCycle(ctx); err != nil {
		log.Printf("Erro no ciclo: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := service.RunCycle(ctx); err != nil {
			log.Printf("Erro no ciclo: %v", err)
		}
	}
}
