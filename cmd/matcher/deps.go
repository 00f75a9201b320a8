package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/db"
	"github.com/jonathan/talent-matcher/internal/embedding"
	"github.com/jonathan/talent-matcher/internal/index"
	"github.com/jonathan/talent-matcher/internal/ingestion"
	"github.com/jonathan/talent-matcher/internal/types"
)

// newProvider builds the configured embedding provider, wrapped in the Redis
// cache when one is configured and reachable. The returned func releases it.
func newProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (embedding.Provider, func(), error) {
	ecfg := embedding.Config{
		Provider:  cfg.Embedding.Provider,
		Model:     cfg.Embedding.Model,
		APIKey:    cfg.APIKey(),
		BaseURL:   cfg.Embedding.BaseURL,
		Dimension: cfg.Embedding.Dimension,
	}

	if cfg.Redis.Addr != "" {
		store, err := embedding.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			log.Warn("embedding cache unavailable, continuing without it",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			ecfg.Cache = store
		}
	}

	provider, err := embedding.New(ctx, ecfg, log)
	if err != nil {
		if closer, ok := ecfg.Cache.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	release := func() {
		if closer, ok := provider.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Debug("closing embedding provider", zap.Error(err))
			}
		}
	}
	return provider, release, nil
}

// opportunitySources lists the file sources and, when requested, the database.
// A database that cannot be reached is logged and left out, like any failed source.
func opportunitySources(ctx context.Context, paths []string, useDB bool, cfg *config.Config, log *zap.Logger) ([]ingestion.OpportunitySource, func(), error) {
	sources := ingestion.FileSources(paths...)
	release := func() {}

	if useDB {
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("--database requires a database URL (DATABASE_URL)")
		}
		conn, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("skipping database source", zap.Error(err))
		} else {
			sources = append(sources, db.Source{Lister: conn, Limit: cfg.Matching.CorpusLimit})
			release = conn.Close
		}
	}

	if len(sources) == 0 {
		return nil, nil, errors.New("no opportunity sources given (use --opportunities or --database)")
	}
	return sources, release, nil
}

// buildIndex embeds the corpus. Entries that fail to embed are logged and
// skipped as long as at least one succeeds.
func buildIndex(ctx context.Context, corpus []types.Opportunity, provider embedding.Provider, cfg *config.Config, log *zap.Logger) (*index.Index, error) {
	idx, err := index.Build(ctx, corpus, provider,
		index.WithBatchSize(cfg.Embedding.BatchSize),
		index.WithConcurrency(cfg.Embedding.Concurrency),
		index.WithLogger(log),
	)

	var buildErr *index.BuildError
	if errors.As(err, &buildErr) && idx != nil && idx.Len() > 0 {
		log.Warn("some opportunities could not be embedded",
			zap.Int("failed", len(buildErr.Failures)),
			zap.Int("total", buildErr.Total),
			zap.Error(err))
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build similarity index: %w", err)
	}
	return idx, nil
}
