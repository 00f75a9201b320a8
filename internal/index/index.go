// Package index embeds an opportunity corpus once and answers nearest-neighbour
// queries by cosine similarity.
package index

import (
	"context"
	"math"
	"sort"

	"github.com/jonathan/talent-matcher/internal/embedding"
	"github.com/jonathan/talent-matcher/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBatchSize is the number of texts sent to the provider per call
	DefaultBatchSize = 32
	// DefaultConcurrency bounds the number of batches in flight
	DefaultConcurrency = 4
)

type options struct {
	batchSize   int
	concurrency int
	logger      *zap.Logger
}

// Option configures Build
type Option func(*options)

// WithBatchSize sets the embedding batch size
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithConcurrency sets the number of concurrent batches
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger used during Build
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type entry struct {
	position int
	opp      *types.Opportunity
	vec      []float64
	norm     float64
}

// Index is an immutable set of embedded opportunities. Query is safe for concurrent use.
type Index struct {
	provider embedding.Provider
	entries  []entry
	size     int
}

// Hit is one query result
type Hit struct {
	Opportunity *types.Opportunity
	// Position is the opportunity's position in the corpus passed to Build
	Position   int
	Similarity float64
	Score      float64
}

// Build embeds every opportunity's combined text. Entries whose embedding fails are
// left out and reported in a *BuildError returned alongside the usable index.
func Build(ctx context.Context, corpus []types.Opportunity, provider embedding.Provider, opts ...Option) (*Index, error) {
	o := options{
		batchSize:   DefaultBatchSize,
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, fn := range opts {
		fn(&o)
	}

	idx := &Index{provider: provider, size: len(corpus)}
	if len(corpus) == 0 {
		return idx, nil
	}

	texts := make([]string, len(corpus))
	for i := range corpus {
		texts[i] = corpus[i].CombinedText()
	}

	vecs := make([][]float64, len(corpus))
	errs := make([]error, len(corpus))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for start := 0; start < len(texts); start += o.batchSize {
		end := min(start+o.batchSize, len(texts))
		g.Go(func() error {
			embedBatch(gctx, provider, texts, start, end, vecs, errs, o.logger)
			return nil
		})
	}
	_ = g.Wait()

	var failures []EntryFailure
	idx.entries = make([]entry, 0, len(corpus))
	for i := range corpus {
		if errs[i] != nil {
			failures = append(failures, EntryFailure{Index: i, ID: corpus[i].ID, Err: errs[i]})
			continue
		}
		idx.entries = append(idx.entries, entry{
			position: i,
			opp:      &corpus[i],
			vec:      vecs[i],
			norm:     norm(vecs[i]),
		})
	}

	o.logger.Info("similarity index built",
		zap.String("provider", provider.Name()),
		zap.Int("entries", len(idx.entries)),
		zap.Int("failed", len(failures)))

	if len(failures) > 0 {
		return idx, &BuildError{Failures: failures, Total: len(corpus)}
	}
	return idx, nil
}

// embedBatch embeds texts[start:end]. When the batch call fails each member is
// retried on its own so only the failing entries are lost.
func embedBatch(ctx context.Context, p embedding.Provider, texts []string, start, end int, vecs [][]float64, errs []error, logger *zap.Logger) {
	batch, err := p.Embed(ctx, texts[start:end])
	if err == nil && len(batch) == end-start {
		for i, v := range batch {
			if len(v) == 0 {
				errs[start+i] = &embedding.Error{Provider: p.Name(), Message: "empty vector"}
				continue
			}
			vecs[start+i] = v
		}
		return
	}

	logger.Warn("batch embedding failed, retrying entries individually",
		zap.Int("start", start), zap.Int("end", end), zap.Error(err))

	for i := start; i < end; i++ {
		v, err := embedding.EmbedOne(ctx, p, texts[i])
		if err == nil && len(v) == 0 {
			err = &embedding.Error{Provider: p.Name(), Message: "empty vector"}
		}
		if err != nil {
			errs[i] = err
			continue
		}
		vecs[i] = v
	}
}

// Len returns the number of embedded entries
func (idx *Index) Len() int {
	return len(idx.entries)
}

// CorpusSize returns the size of the corpus passed to Build, including failed entries
func (idx *Index) CorpusSize() int {
	return idx.size
}

// Provider returns the provider used to embed the corpus
func (idx *Index) Provider() embedding.Provider {
	return idx.provider
}

// Query returns the n most similar entries to text, ordered by descending similarity
// with ties broken by corpus position. n <= 0 returns no hits.
func (idx *Index) Query(ctx context.Context, text string, n int) ([]Hit, error) {
	if n <= 0 || len(idx.entries) == 0 {
		return []Hit{}, nil
	}

	q, err := embedding.EmbedOne(ctx, idx.provider, text)
	if err != nil {
		return nil, &QueryError{Message: "failed to embed query", Cause: err}
	}
	qn := norm(q)

	hits := make([]Hit, len(idx.entries))
	for i, e := range idx.entries {
		sim := cosine(q, qn, e.vec, e.norm)
		hits[i] = Hit{
			Opportunity: e.opp,
			Position:    e.position,
			Similarity:  sim,
			Score:       types.MatchScore(sim),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if n < len(hits) {
		hits = hits[:n]
	}
	return hits, nil
}

// Vectors returns a copy of the stored vectors keyed by corpus position
func (idx *Index) Vectors() map[int][]float64 {
	out := make(map[int][]float64, len(idx.entries))
	for _, e := range idx.entries {
		out[e.position] = append([]float64(nil), e.vec...)
	}
	return out
}

// Cosine returns the cosine similarity of a and b; zero-norm vectors score 0.
func Cosine(a, b []float64) float64 {
	return cosine(a, norm(a), b, norm(b))
}

func cosine(a []float64, an float64, b []float64, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 0
	}
	n := min(len(a), len(b))
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	return dot / (an * bn)
}

func norm(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
