package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/ingestion"
	"github.com/jonathan/talent-matcher/internal/logger"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/ranking"
	"github.com/jonathan/talent-matcher/internal/types"
)

type matchResumesOptions struct {
	opportunities []string
	useDB         bool
	resumesDir    string
	provider      string
	model         string
	topN          int
	format        string
	output        string
}

func newMatchResumesCmd(root *rootOptions) *cobra.Command {
	opts := &matchResumesOptions{}

	cmd := &cobra.Command{
		Use:   "match-resumes",
		Short: "Rank job opportunities for each resume by semantic similarity",
		Long:  "Loads opportunities from CSV, JSON and HTML files (and optionally PostgreSQL), embeds them once, and returns the top matches with a justification for every resume in a directory.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatchResumes(cmd, root, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.opportunities, "opportunities", "o", nil, "Opportunity files (.csv, .json, .html); repeat or comma-separate")
	cmd.Flags().BoolVar(&opts.useDB, "database", false, "Also load opportunities from the configured database")
	cmd.Flags().StringVarP(&opts.resumesDir, "resumes", "r", "", "Directory of .txt/.md resumes (required)")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Embedding provider: gemini, openai or hashing")
	cmd.Flags().StringVar(&opts.model, "model", "", "Embedding model name")
	cmd.Flags().IntVarP(&opts.topN, "top", "n", 0, "Matches per resume (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Console output: text or json")
	cmd.Flags().StringVar(&opts.output, "out", "", "Also write the JSON report to this path")

	if err := cmd.MarkFlagRequired("resumes"); err != nil {
		panic(fmt.Sprintf("failed to mark resumes flag as required: %v", err))
	}
	return cmd
}

func runMatchResumes(cmd *cobra.Command, root *rootOptions, opts *matchResumesOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	ctx := cmd.Context()

	cfg, log, err := root.setup(config.Config{
		Embedding: config.EmbeddingConfig{Provider: opts.provider, Model: opts.model},
		Matching:  config.MatchingConfig{TopN: opts.topN},
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sessionID := uuid.New()
	log = logger.WithRun(log, sessionID.String(), string(types.ModeSemantic), cfg.Embedding.Provider, cfg.Embedding.Model)

	// 1. Load resumes
	resumes, _, err := ingestion.LoadResumes(opts.resumesDir)
	if err != nil {
		return fmt.Errorf("failed to load resumes: %w", err)
	}
	if len(resumes) == 0 {
		log.Warn("no resumes found", zap.String("dir", opts.resumesDir))
	}

	// 2. Load the opportunity corpus
	sources, releaseSources, err := opportunitySources(ctx, opts.opportunities, opts.useDB, cfg, log)
	if err != nil {
		return err
	}
	defer releaseSources()

	corpus, _, err := ingestion.LoadCorpus(ctx, sources, log)
	if err != nil {
		return err
	}

	// 3. Embed the corpus
	provider, releaseProvider, err := newProvider(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer releaseProvider()

	idx, err := buildIndex(ctx, corpus, provider, cfg, log)
	if err != nil {
		return err
	}

	// 4. Match every resume
	engine := ranking.NewSemanticEngine(idx)
	engine.TopN = cfg.Matching.TopN
	engine.Concurrency = cfg.Matching.Concurrency
	engine.Logger = log

	report := &types.MatchReport{
		SessionID:   sessionID,
		GeneratedAt: time.Now().UTC(),
		Mode:        types.ModeSemantic,
		Provider:    provider.Name(),
		CorpusSize:  len(corpus),
		Results:     engine.MatchAll(ctx, resumes),
	}
	log.Info("resumes matched",
		zap.Int("resumes", len(resumes)),
		zap.Int("opportunities", idx.Len()))

	// 5. Emit
	checkReport(report, log)

	if opts.output != "" {
		if err := writeJSON(opts.output, report); err != nil {
			return err
		}
	}

	if opts.format == formatJSON {
		return printJSON(cmd.OutOrStdout(), report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMatchReport(report)
	return nil
}
