package ingestion

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/talent-matcher/internal/types"
)

// OpportunitySource is one feed of opportunities.
type OpportunitySource interface {
	Name() string
	Load(ctx context.Context) ([]types.Opportunity, *SourceInfo, error)
}

// FileSource loads opportunities from a local file, picking the parser by extension.
type FileSource struct {
	Path string
}

// Name returns the file path
func (s FileSource) Name() string {
	return s.Path
}

// Load parses the file as CSV, JSON or HTML.
func (s FileSource) Load(ctx context.Context) ([]types.Opportunity, *SourceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".csv":
		return LoadOpportunitiesCSV(s.Path)
	case ".json":
		return LoadOpportunitiesJSON(s.Path)
	case ".html", ".htm":
		return LoadHTMLPostings(s.Path)
	default:
		return nil, nil, &Error{Path: s.Path, Message: "unsupported opportunity file type"}
	}
}

// FileSources wraps each path in a FileSource.
func FileSources(paths ...string) []OpportunitySource {
	sources := make([]OpportunitySource, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, FileSource{Path: p})
	}
	return sources
}

// LoadCorpus concatenates opportunities from every source in order. A source that
// fails is logged and skipped; ErrNoSources is returned only when none loads.
// An empty but successful source still counts as loaded.
func LoadCorpus(ctx context.Context, sources []OpportunitySource, logger *zap.Logger) ([]types.Opportunity, []*SourceInfo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		corpus []types.Opportunity
		infos  []*SourceInfo
	)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		opps, info, err := src.Load(ctx)
		if err != nil {
			logger.Warn("skipping opportunity source",
				zap.String("source", src.Name()),
				zap.Error(err))
			continue
		}
		logger.Info("loaded opportunity source",
			zap.String("source", src.Name()),
			zap.Int("opportunities", len(opps)))
		corpus = append(corpus, opps...)
		infos = append(infos, info)
	}

	if len(infos) == 0 {
		return nil, nil, ErrNoSources
	}
	if corpus == nil {
		corpus = []types.Opportunity{}
	}
	return corpus, infos, nil
}
