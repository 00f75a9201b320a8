// Package embedding provides text embedding providers used to build and query the
// similarity index. Providers are deterministic for identical input within one
// process lifetime.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Provider maps texts to fixed-dimension vectors, one per input, in input order.
type Provider interface {
	// Embed returns one vector per text. Implementations may batch internally.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	// Name identifies the provider and model, e.g. "gemini/text-embedding-004".
	Name() string
}

// Provider names accepted by New
const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderHashing = "hashing"
)

// Config selects and configures a provider.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	Dimension int

	// Cache, when non-nil, wraps the provider in a CachedProvider.
	Cache Store
}

// New creates the provider named in cfg.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		p   Provider
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderHashing, "":
		p = NewHashingProvider(cfg.Dimension)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("embedding provider ready", zap.String("provider", p.Name()))

	if cfg.Cache != nil {
		return NewCachedProvider(p, cfg.Cache, logger), nil
	}
	return p, nil
}

// EmbedOne embeds a single text.
func EmbedOne(ctx context.Context, p Provider, text string) ([]float64, error) {
	vecs, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, &Error{Provider: p.Name(), Message: fmt.Sprintf("expected 1 vector, got %d", len(vecs))}
	}
	return vecs[0], nil
}

// checkCount verifies a provider returned exactly one non-empty vector per input.
func checkCount(name string, want int, vecs [][]float64) error {
	if len(vecs) != want {
		return &Error{Provider: name, Message: fmt.Sprintf("expected %d vectors, got %d", want, len(vecs))}
	}
	for i, v := range vecs {
		if len(v) == 0 {
			return &Error{Provider: name, Message: fmt.Sprintf("empty vector at position %d", i)}
		}
	}
	return nil
}
