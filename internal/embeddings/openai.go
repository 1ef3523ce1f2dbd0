package embeddings

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Dimensions é o tamanho fixo do vetor do catálogo.
const Dimensions = 384

type Client struct {
	api *openai.Client
}

func NewClient(apiKey string) *Client {
	return &Client{api: openai.NewClient(apiKey)}
}

// Embed gera o vetor do texto. Texto vazio devolve o vetor zero
// determinístico sem gastar chamada de API.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return make([]float32, Dimensions), nil
	}

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model:      openai.SmallEmbedding3,
		Input:      text,
		Dimensions: Dimensions,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data[0].Embedding, nil
}
