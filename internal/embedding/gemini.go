package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the Gemini embedding model used when none is configured
const DefaultGeminiModel = "text-embedding-004"

// geminiMaxBatch is the largest batch accepted by BatchEmbedContents
const geminiMaxBatch = 100

// GeminiProvider embeds text with the Gemini embedding API
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Name returns "gemini/<model>"
func (p *GeminiProvider) Name() string {
	return ProviderGemini + "/" + p.model
}

// Embed embeds texts in chunks of at most geminiMaxBatch
func (p *GeminiProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := p.client.EmbeddingModel(p.model)
	out := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += geminiMaxBatch {
		end := min(start+geminiMaxBatch, len(texts))

		batch := em.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}

		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, &Error{Provider: p.Name(), Message: "batch embed failed", Cause: err}
		}
		if len(resp.Embeddings) != end-start {
			return nil, &Error{Provider: p.Name(), Message: fmt.Sprintf("expected %d embeddings, got %d", end-start, len(resp.Embeddings))}
		}

		for _, e := range resp.Embeddings {
			if e == nil {
				return nil, &Error{Provider: p.Name(), Message: "missing embedding in response"}
			}
			out = append(out, toFloat64(e.Values))
		}
	}

	return out, nil
}

// Close releases resources held by the client
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
