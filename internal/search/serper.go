package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

// Item é um resultado cru do provedor: shopping já traz preço, orgânico
// traz snippet.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  string `json:"source"`
	Price   string `json:"price"`
	Snippet string `json:"snippet"`
}

type Response struct {
	Shopping []Item `json:"shopping"`
	Organic  []Item `json:"organic"`
}

// Provider é o colaborador de busca externa, tratado como caixa-preta que
// pode falhar ou vir vazia.
type Provider interface {
	Search(ctx context.Context, query string) (*Response, error)
}

type SerperClient struct {
	apiKey string
	http   *http.Client
}

func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *SerperClient) Search(ctx context.Context, query string) (*Response, error) {
	payload, err := json.Marshal(map[string]any{
		"q":   query,
		"gl":  "br",
		"hl":  "pt-br",
		"num": 8,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper status %d", resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
