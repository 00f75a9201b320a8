package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/jonathan/talent-matcher/internal/ingestion"
	"github.com/jonathan/talent-matcher/internal/types"
)

// ListOpportunities reads up to limit opportunities in insertion order. It never
// writes.
func (db *DB) ListOpportunities(ctx context.Context, limit int) ([]types.Opportunity, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+opportunityColumns+`
		 FROM opportunities ORDER BY created_at ASC, id ASC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	opps := []types.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read opportunities: %w", err)
	}
	return opps, nil
}

// OpportunityLister is the read side of DB used by Source
type OpportunityLister interface {
	ListOpportunities(ctx context.Context, limit int) ([]types.Opportunity, error)
}

// Source adapts a database to an ingestion.OpportunitySource.
type Source struct {
	Lister OpportunityLister
	Limit  int
}

// Name identifies the source in logs
func (s Source) Name() string {
	return "database"
}

// Load lists opportunities from the database.
func (s Source) Load(ctx context.Context) ([]types.Opportunity, *ingestion.SourceInfo, error) {
	opps, err := s.Lister.ListOpportunities(ctx, s.Limit)
	if err != nil {
		return nil, nil, err
	}

	h := sha256.New()
	for _, o := range opps {
		h.Write([]byte(o.ID))
		h.Write([]byte{0})
	}
	info := &ingestion.SourceInfo{
		Path:     "database:opportunities?limit=" + strconv.Itoa(s.Limit),
		Kind:     ingestion.KindDatabase,
		Records:  len(opps),
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Hash:     hex.EncodeToString(h.Sum(nil)),
	}
	return opps, info, nil
}
