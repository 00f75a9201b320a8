package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/ingestion"
	"github.com/jonathan/talent-matcher/internal/logger"
)

type embedCorpusOptions struct {
	opportunities []string
	useDB         bool
	provider      string
	model         string
	output        string
}

// corpusVectors is the file written by embed-corpus --out.
type corpusVectors struct {
	Provider string                 `json:"provider"`
	Sources  []*ingestion.SourceInfo `json:"sources"`
	Vectors  []opportunityVector    `json:"vectors"`
}

type opportunityVector struct {
	ID       string    `json:"id"`
	Position int       `json:"position"`
	Company  string    `json:"company"`
	Role     string    `json:"role"`
	Vector   []float64 `json:"vector"`
}

func newEmbedCorpusCmd(root *rootOptions) *cobra.Command {
	opts := &embedCorpusOptions{}

	cmd := &cobra.Command{
		Use:   "embed-corpus",
		Short: "Embed an opportunity corpus, warming the embedding cache",
		Long:  "Loads and embeds every opportunity once. With Redis configured the vectors are cached for later match-resumes runs; --out also writes them to a JSON file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEmbedCorpus(cmd, root, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.opportunities, "opportunities", "o", nil, "Opportunity files (.csv, .json, .html)")
	cmd.Flags().BoolVar(&opts.useDB, "database", false, "Also load opportunities from the configured database")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Embedding provider: gemini, openai or hashing")
	cmd.Flags().StringVar(&opts.model, "model", "", "Embedding model name")
	cmd.Flags().StringVar(&opts.output, "out", "", "Write the vectors to this JSON file")
	return cmd
}

func runEmbedCorpus(cmd *cobra.Command, root *rootOptions, opts *embedCorpusOptions) error {
	ctx := cmd.Context()

	cfg, log, err := root.setup(config.Config{
		Embedding: config.EmbeddingConfig{Provider: opts.provider, Model: opts.model},
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	log = logger.WithRun(log, "", "embed", cfg.Embedding.Provider, cfg.Embedding.Model)

	sources, releaseSources, err := opportunitySources(ctx, opts.opportunities, opts.useDB, cfg, log)
	if err != nil {
		return err
	}
	defer releaseSources()

	corpus, infos, err := ingestion.LoadCorpus(ctx, sources, log)
	if err != nil {
		return err
	}

	provider, releaseProvider, err := newProvider(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer releaseProvider()

	idx, err := buildIndex(ctx, corpus, provider, cfg, log)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Embedded %d of %d opportunities with %s\n", idx.Len(), idx.CorpusSize(), provider.Name())

	if opts.output == "" {
		return nil
	}

	vectors := idx.Vectors()
	positions := make([]int, 0, len(vectors))
	for pos := range vectors {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	out := corpusVectors{Provider: provider.Name(), Sources: infos, Vectors: make([]opportunityVector, 0, len(positions))}
	for _, pos := range positions {
		opp := corpus[pos]
		out.Vectors = append(out.Vectors, opportunityVector{
			ID:       opp.ID,
			Position: pos,
			Company:  opp.Company,
			Role:     opp.Role,
			Vector:   vectors[pos],
		})
	}
	if err := writeJSON(opts.output, out); err != nil {
		return err
	}
	log.Info("vectors written", zap.String("path", opts.output), zap.Int("count", len(out.Vectors)))
	return nil
}
