package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is the OpenAI embedding model used when none is configured
const DefaultOpenAIModel = "text-embedding-3-small"

// OpenAIProvider embeds text with the OpenAI embeddings endpoint
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed provider. baseURL is optional and
// allows OpenAI-compatible endpoints.
func NewOpenAIProvider(apiKey, model, baseURL string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for openai")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIProvider{client: &client, model: model}, nil
}

// Name returns "openai/<model>"
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI + "/" + p.model
}

// Embed sends all texts in one request and reorders the response by index
func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, &Error{Provider: p.Name(), Message: "embedding request failed", Cause: err}
	}

	out := make([][]float64, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(out) {
			return nil, &Error{Provider: p.Name(), Message: fmt.Sprintf("response index %d out of range", d.Index)}
		}
		out[d.Index] = d.Embedding
	}

	if err := checkCount(p.Name(), len(texts), out); err != nil {
		return nil, err
	}
	return out, nil
}
