package catalog

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"garimpo/internal/repository"
)

// rankDepth é quanto cada ranking contribui para a fusão.
const rankDepth = 20

// Store é a fatia do repositório que o serviço consome.
type Store interface {
	UpsertProductAndPrice(ctx context.Context, url, domain, title string, price *decimal.Decimal, specs map[string]string, description string, embedding []float32) (string, error)
	SearchFullText(ctx context.Context, query string, limit int) ([]repository.ProductRow, error)
	SearchSemantic(ctx context.Context, embedding []float32, limit int) ([]repository.ProductRow, error)
	AveragePriceSince(ctx context.Context, productID string, from, until time.Time) (*decimal.Decimal, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service registra produtos no catálogo e responde buscas locais.
type Service struct {
	store    Store
	embedder Embedder
}

func NewService(store Store, embedder Embedder) *Service {
	return &Service{store: store, embedder: embedder}
}

// Register faz o upsert do produto (e do ponto de histórico, quando há
// preço). O embedding é melhor esforço: falha vira warning, não erro.
func (s *Service) Register(ctx context.Context, rawURL, title string, price *decimal.Decimal, description string, specs map[string]string) (string, error) {
	domain := "unknown"
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		domain = parsed.Host
	}

	var embedding []float32
	if s.embedder != nil {
		emb, err := s.embedder.Embed(ctx, title+"\n"+description)
		if err != nil {
			log.Printf("[Catalog] embedding falhou para %s: %v", rawURL, err)
		} else {
			embedding = emb
		}
	}

	return s.store.UpsertProductAndPrice(ctx, rawURL, domain, title, price, specs, description, embedding)
}

// SearchLocal é a busca léxica simples, usada antes de ir à web.
func (s *Service) SearchLocal(ctx context.Context, query string, limit int) ([]repository.ProductRow, error) {
	return s.store.SearchFullText(ctx, query, limit)
}

// SearchHybrid combina os dois sinais de relevância por RRF: o texto da
// consulta alimenta o full-text e o embedding alimenta a busca vetorial.
func (s *Service) SearchHybrid(ctx context.Context, query string, limit int) ([]FusedResult, error) {
	lexical, err := s.store.SearchFullText(ctx, query, rankDepth)
	if err != nil {
		return nil, err
	}

	var semantic []repository.ProductRow
	if s.embedder != nil {
		embedding, err := s.embedder.Embed(ctx, query)
		if err != nil {
			// sem vetor a fusão degrada para o ranking léxico
			log.Printf("[Catalog] embedding da consulta falhou: %v", err)
		} else {
			semantic, err = s.store.SearchSemantic(ctx, embedding, rankDepth)
			if err != nil {
				return nil, err
			}
		}
	}

	return FuseRanks(lexical, semantic, limit), nil
}
