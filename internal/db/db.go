// Package db reads job opportunities from PostgreSQL.
package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/talent-matcher/internal/types"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the opportunities table when missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

const opportunityColumns = `id, company, role, tech_stack, one_liner, requirements, industry,
	workplace, locations, yoe, salary_min, salary_max, equity, visa,
	team_size, funding, source`

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(row rowScanner) (types.Opportunity, error) {
	var r opportunityRow
	err := row.Scan(&r.ID, &r.Company, &r.Role, &r.TechStack, &r.OneLiner,
		&r.Requirements, &r.Industry, &r.Workplace, &r.Locations, &r.YOE,
		&r.SalaryMin, &r.SalaryMax, &r.Equity, &r.Visa, &r.TeamSize,
		&r.Funding, &r.Source)
	if err != nil {
		return types.Opportunity{}, err
	}
	return r.toOpportunity(), nil
}

// GetOpportunity retrieves one opportunity by ID. A missing ID returns nil, nil.
func (db *DB) GetOpportunity(ctx context.Context, id string) (*types.Opportunity, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`, id)
	opp, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get opportunity %s: %w", id, err)
	}
	return &opp, nil
}
