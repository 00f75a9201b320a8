package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/logger"
)

const app = "matcher"

// Output formats for report commands
const (
	formatText = "text"
	formatJSON = "json"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	debug      bool
	json       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           app,
		Short:         "Match resumes to job opportunities and rank candidates for a role",
		Long:          "matcher ranks job opportunities against free-text resumes by embedding similarity, and ranks structured candidate profiles against a role with a weighted heuristic scorer.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "a config file (default is matcher.yaml in current directory)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolVarP(&opts.json, "json", "j", false, "json format for logging")

	cmd.AddCommand(
		newMatchResumesCmd(opts),
		newRankCandidatesCmd(opts),
		newEmbedCorpusCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (o *rootOptions) setup(overrides config.Config) (*config.Config, *zap.Logger, error) {
	fileCfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	merged := overrides.MergeWithDefaults(*fileCfg)
	if err := merged.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(o.json, o.debug)
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return &merged, log, nil
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, formatText, formatJSON)
	}
}
