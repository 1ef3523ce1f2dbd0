package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	RedisURL         string
	OpenAIKey        string
	SerperAPIKey     string
	TelegramBotToken string
	MetricsPort      string
	WatchInterval    int // minutos
	FetchTimeout     int // segundos
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		SerperAPIKey:     os.Getenv("SERPER_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		MetricsPort:      getEnv("METRICS_PORT", "9090"),
		WatchInterval:    getEnvInt("WATCH_INTERVAL_MINUTES", 30),
		FetchTimeout:     getEnvInt("FETCH_TIMEOUT_SECONDS", 10),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return d
}
