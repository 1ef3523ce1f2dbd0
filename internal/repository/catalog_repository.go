package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProductRow é uma linha de resultado das buscas do catálogo, já com o
// último preço registrado quando existe.
type ProductRow struct {
	ProductID   string
	Title       string
	URL         string
	Description string
	Price       *decimal.Decimal
	Currency    string
}

type CatalogRepository struct {
	DB *pgxpool.Pool
}

// UpsertProductAndPrice insere ou atualiza o produto pela URL e, quando há
// preço, registra um ponto novo no histórico. O histórico nunca é editado.
func (r *CatalogRepository) UpsertProductAndPrice(
	ctx context.Context,
	url, domain, title string,
	price *decimal.Decimal,
	specs map[string]string,
	description string,
	embedding []float32,
) (string, error) {

	specsJSON, err := json.Marshal(specs)
	if err != nil {
		specsJSON = []byte("{}")
	}

	var embArg any
	if len(embedding) > 0 {
		embArg = vectorLiteral(embedding)
	}

	var descArg any
	if description != "" {
		descArg = description
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var productID string
	err = tx.QueryRow(ctx, `
		INSERT INTO products (product_id, url, domain, title, description, specs, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO UPDATE
		SET title = EXCLUDED.title,
		    description = COALESCE(EXCLUDED.description, products.description),
		    specs = EXCLUDED.specs,
		    embedding = COALESCE(EXCLUDED.embedding, products.embedding),
		    last_updated_at = NOW()
		RETURNING product_id
	`, uuid.New(), url, domain, title, descArg, specsJSON, embArg).Scan(&productID)
	if err != nil {
		return "", err
	}

	if price != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO price_history (product_id, price_amount, currency)
			VALUES ($1, $2, 'BRL')
		`, productID, price.String())
		if err != nil {
			return "", err
		}
	}

	return productID, tx.Commit(ctx)
}

// SearchFullText é o ranking léxico: full-text em português ordenado por
// ts_rank, com o preço mais recente de cada produto.
func (r *CatalogRepository) SearchFullText(ctx context.Context, query string, limit int) ([]ProductRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.product_id, p.title, p.url, COALESCE(p.description, ''),
		       latest.price_amount::text, latest.currency
		FROM products p
		LEFT JOIN LATERAL (
			SELECT price_amount, currency
			FROM price_history ph
			WHERE ph.product_id = p.product_id
			ORDER BY scraped_at DESC LIMIT 1
		) latest ON true
		WHERE p.is_active
		  AND p.search_vector @@ websearch_to_tsquery('portuguese', $1)
		ORDER BY ts_rank(p.search_vector, websearch_to_tsquery('portuguese', $1)) DESC
		LIMIT $2
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// SearchSemantic é o ranking vetorial: distância de cosseno sobre o
// embedding de 384 dimensões.
func (r *CatalogRepository) SearchSemantic(ctx context.Context, embedding []float32, limit int) ([]ProductRow, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.product_id, p.title, p.url, COALESCE(p.description, ''),
		       latest.price_amount::text, latest.currency
		FROM products p
		LEFT JOIN LATERAL (
			SELECT price_amount, currency
			FROM price_history ph
			WHERE ph.product_id = p.product_id
			ORDER BY scraped_at DESC LIMIT 1
		) latest ON true
		WHERE p.is_active AND p.embedding IS NOT NULL
		ORDER BY p.embedding <=> $1
		LIMIT $2
	`, vectorLiteral(embedding), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProductRows(rows)
}

// AveragePriceSince calcula a média do histórico na janela [from, until).
// Sem pontos na janela devolve nil: histórico insuficiente não é erro.
func (r *CatalogRepository) AveragePriceSince(ctx context.Context, productID string, from, until time.Time) (*decimal.Decimal, error) {
	var avg *string
	err := r.DB.QueryRow(ctx, `
		SELECT AVG(price_amount)::text
		FROM price_history
		WHERE product_id = $1
		  AND scraped_at >= $2
		  AND scraped_at < $3
	`, productID, from, until).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*avg)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DeactivateProduct desliga o produto do catálogo; nada é apagado.
func (r *CatalogRepository) DeactivateProduct(ctx context.Context, productID string) error {
	_, err := r.DB.Exec(ctx, `UPDATE products SET is_active = FALSE WHERE product_id = $1`, productID)
	return err
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
}

func scanProductRows(rows pgxRows) ([]ProductRow, error) {
	var result []ProductRow
	for rows.Next() {
		var row ProductRow
		var priceStr, currency *string
		if err := rows.Scan(&row.ProductID, &row.Title, &row.URL, &row.Description, &priceStr, &currency); err != nil {
			continue // pula linha com erro de scan
		}
		if priceStr != nil {
			if d, err := decimal.NewFromString(*priceStr); err == nil {
				row.Price = &d
			}
		}
		if currency != nil {
			row.Currency = *currency
		}
		result = append(result, row)
	}
	return result, nil
}

// vectorLiteral converte []float32 para "[v1,v2,...]" (pgvector espera colchetes)
func vectorLiteral(embedding []float32) string {
	parts := make([]string, len(embedding))
	for i, v := range embedding {
		parts[i] = strconv.FormatFloat(float64(v), 'f', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
