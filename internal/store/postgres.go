package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/inspection-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. Tests substitute a
// pgxmock pool through the same interface.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig tunes the pgx pool.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// DefaultPoolConfig returns pool settings suitable for CLI and batch use.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:        8,
		MinConns:        1,
		MaxConnLifetime: 30 * time.Minute,
	}
}

// NewPostgres connects to the given DSN and verifies the connection.
func NewPostgres(ctx context.Context, dsn string, cfg PoolConfig) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse dsn")
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS recon_runs (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	source     TEXT NOT NULL,
	parser_id  TEXT NOT NULL,
	status     TEXT NOT NULL,
	record     JSONB,
	provenance JSONB,
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_recon_runs_status ON recon_runs(status);
CREATE INDEX IF NOT EXISTS idx_recon_runs_parser ON recon_runs(parser_id);
CREATE INDEX IF NOT EXISTS idx_recon_runs_created ON recon_runs(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *model.ReconRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	recordJSON, provJSON, err := marshalRun(run)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal run")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO recon_runs (id, source, parser_id, status, record, provenance, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.Source, run.ParserID, string(run.Status),
		nullableJSON(recordJSON), nullableJSON(provJSON), run.Error, run.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert run %s", run.ID)
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.ReconRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, parser_id, status, record, provenance, error, created_at
		 FROM recon_runs WHERE id = $1`, runID)

	run, err := scanPgRun(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ReconRun, error) {
	query := `SELECT id, source, parser_id, status, record, provenance, error, created_at
	          FROM recon_runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` AND status = $1`
	}
	if filter.ParserID != "" {
		args = append(args, filter.ParserID)
		query += ` AND parser_id = $` + itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.ReconRun
	for rows.Next() {
		run, err := scanPgRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: list runs iterate")
}

// scanPgRun decodes a run row where the JSON columns arrive as []byte.
func scanPgRun(scan func(dest ...any) error) (*model.ReconRun, error) {
	var run model.ReconRun
	var status string
	var recordJSON, provJSON []byte

	if err := scan(&run.ID, &run.Source, &run.ParserID, &status, &recordJSON, &provJSON, &run.Error, &run.CreatedAt); err != nil {
		return nil, err
	}
	run.Status = model.RunStatus(status)

	if len(recordJSON) > 0 {
		run.Record = &model.WorkingRecord{}
		if err := json.Unmarshal(recordJSON, run.Record); err != nil {
			return nil, err
		}
	}
	if len(provJSON) > 0 {
		run.Provenance = &model.Provenance{}
		if err := json.Unmarshal(provJSON, run.Provenance); err != nil {
			return nil, err
		}
	}
	return &run, nil
}

func nullableJSON(s string) any {
	if s == "" {
		return nil
	}
	return []byte(s)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
