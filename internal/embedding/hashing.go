package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// DefaultHashingDimension matches the width of small sentence-embedding models
const DefaultHashingDimension = 384

// HashingProvider is a local, deterministic bag-of-words embedder. Each lower-cased
// token is hashed to a bucket with a sign bit; vectors are L2-normalized. It needs no
// network access and is used for offline runs and tests.
type HashingProvider struct {
	dim int
}

// NewHashingProvider creates a hashing provider; dim <= 0 selects the default.
func NewHashingProvider(dim int) *HashingProvider {
	if dim <= 0 {
		dim = DefaultHashingDimension
	}
	return &HashingProvider{dim: dim}
}

// Name returns "hashing/<dim>"
func (p *HashingProvider) Name() string {
	return fmt.Sprintf("%s/%d", ProviderHashing, p.dim)
}

// Embed hashes every text independently
func (p *HashingProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = p.vector(t)
	}
	return out, nil
}

func (p *HashingProvider) vector(text string) []float64 {
	v := make([]float64, p.dim)
	for _, tok := range Tokenize(text) {
		h := xxhash.Sum64String(tok)
		bucket := int(h % uint64(p.dim))
		if h&(1<<63) != 0 {
			v[bucket]--
		} else {
			v[bucket]++
		}
	}

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// Tokenize lower-cases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
