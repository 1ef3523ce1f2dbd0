package fetch

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Result separa os dois desfechos que não são falha de transporte: o status
// HTTP (2xx ou não) e o corpo. Erro de transporte vem no error do Get.
type Result struct {
	StatusCode int
	Body       string
}

func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Doer é a interface consumida pelo orquestrador e pelo watchdog.
type Doer interface {
	Get(ctx context.Context, url string) (*Result, error)
}

type Client struct {
	http *http.Client
}

// NewClient cria o cliente de fetch com timeout obrigatório: uma página
// lenta vira "erro de conexão", nunca uma espera sem fim.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Get(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Result{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
