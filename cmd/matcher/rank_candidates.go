package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/ingestion"
	"github.com/jonathan/talent-matcher/internal/logger"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/outreach"
	"github.com/jonathan/talent-matcher/internal/ranking"
	"github.com/jonathan/talent-matcher/internal/scoring"
	"github.com/jonathan/talent-matcher/internal/types"
)

type rankCandidatesOptions struct {
	candidates     string
	requiredSkills []string
	filter         string
	rulesPath      string
	referenceYear  int
	topN           int
	format         string
	output         string
}

func newRankCandidatesCmd(root *rootOptions) *cobra.Command {
	opts := &rankCandidatesOptions{}

	cmd := &cobra.Command{
		Use:   "rank-candidates",
		Short: "Rank candidate profiles for a role with the weighted scorer",
		Long:  "Scores every candidate in a CSV export on location, title, experience, skills, GitHub, education and startup fit, and prints the top candidates with reasons and a suggested outreach message.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRankCandidates(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.candidates, "candidates", "c", "", "Candidate CSV export (required)")
	cmd.Flags().StringSliceVarP(&opts.requiredSkills, "skills", "s", nil, "Required skills for the role (default from config)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "CEL eligibility expression over profile and simulated, e.g. 'simulated.years_experience >= 3'")
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "Scoring rules YAML (default: built-in rules)")
	cmd.Flags().IntVar(&opts.referenceYear, "reference-year", 0, "Year experience is counted up to (default: current year)")
	cmd.Flags().IntVarP(&opts.topN, "top", "n", 0, "Candidates to return (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Console output: text or json")
	cmd.Flags().StringVar(&opts.output, "out", "", "Also write the JSON report to this path")

	if err := cmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}
	return cmd
}

func runRankCandidates(cmd *cobra.Command, root *rootOptions, opts *rankCandidatesOptions) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	ctx := cmd.Context()

	cfg, log, err := root.setup(config.Config{
		Ranking: config.RankingConfig{
			RulesPath:      opts.rulesPath,
			RequiredSkills: opts.requiredSkills,
			ReferenceYear:  opts.referenceYear,
			Filter:         opts.filter,
			TopN:           opts.topN,
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sessionID := uuid.New()
	log = logger.WithRun(log, sessionID.String(), string(types.ModeWeighted), "", "")

	engine, err := newWeightedEngine(cfg, log)
	if err != nil {
		return err
	}

	profiles, _, err := ingestion.LoadCandidatesCSV(opts.candidates)
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	ranked, err := engine.Rank(ctx, profiles, cfg.Ranking.TopN)
	if err != nil {
		return fmt.Errorf("failed to rank candidates: %w", err)
	}
	log.Info("candidates ranked",
		zap.Int("considered", len(profiles)),
		zap.Int("returned", len(ranked)))

	skills := cfg.Ranking.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	report := &types.CandidateReport{
		SessionID:      sessionID,
		GeneratedAt:    time.Now().UTC(),
		Mode:           types.ModeWeighted,
		RequiredSkills: skills,
		Weights:        engine.Weights,
		Considered:     len(profiles),
		Candidates:     ranked,
	}

	checkReport(report, log)

	if opts.output != "" {
		if err := writeJSON(opts.output, report); err != nil {
			return err
		}
	}

	if opts.format == formatJSON {
		return printJSON(cmd.OutOrStdout(), report)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout()).WithMaxItems(cfg.Ranking.TopN)
	printer.PrintRoleRequirements("ROLE: "+cfg.Outreach.Role+" @ "+cfg.Outreach.Company, []string{
		"Required skills: " + strings.Join(skills, ", "),
	})
	printer.PrintCandidateReport(report)

	if len(ranked) > 0 {
		msg, err := outreach.Render(cfg.Outreach.Template, outreach.NewData(ranked[0], cfg.Outreach.Role, cfg.Outreach.Company))
		if err != nil {
			log.Warn("could not draft outreach message", zap.Error(err))
		} else {
			printer.PrintOutreach(msg)
		}
	}
	return nil
}

// newWeightedEngine assembles the scorer, weights and filter from configuration.
func newWeightedEngine(cfg *config.Config, log *zap.Logger) (*ranking.WeightedEngine, error) {
	rules := scoring.DefaultRules()
	if cfg.Ranking.RulesPath != "" {
		loaded, err := scoring.LoadRules(cfg.Ranking.RulesPath)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}

	weights := ranking.DefaultWeights()
	if len(cfg.Ranking.Weights) > 0 {
		weights = ranking.Weights(cfg.Ranking.Weights)
	}
	if err := ranking.ValidateWeights(weights); err != nil {
		if !errors.Is(err, ranking.ErrWeightsSum) {
			return nil, err
		}
		// scores scale with the total
		log.Warn("ranking weights do not sum to 1", zap.Float64("sum", weights.Sum()), zap.Error(err))
	}

	filter, err := ranking.NewFilter(cfg.Ranking.Filter)
	if err != nil {
		return nil, err
	}

	engine := &ranking.WeightedEngine{
		Scorer:         scoring.New(rules),
		Weights:        weights,
		RequiredSkills: cfg.Ranking.RequiredSkills,
		Filter:         filter,
		Concurrency:    cfg.Ranking.Concurrency,
		Logger:         log,
	}
	if year := cfg.Ranking.ReferenceYear; year > 0 {
		engine.Now = func() time.Time {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
	}
	return engine, nil
}
