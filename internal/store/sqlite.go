package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/inspection-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS recon_runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	parser_id  TEXT NOT NULL,
	status     TEXT NOT NULL,
	record     TEXT,
	provenance TEXT,
	error      TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_recon_runs_status ON recon_runs(status);
CREATE INDEX IF NOT EXISTS idx_recon_runs_parser ON recon_runs(parser_id);
CREATE INDEX IF NOT EXISTS idx_recon_runs_created ON recon_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts one completed reconciliation as an immutable audit row.
// A missing run id is assigned here.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.ReconRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	recordJSON, provJSON, err := marshalRun(run)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal run")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recon_runs (id, source, parser_id, status, record, provenance, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.ParserID, string(run.Status), recordJSON, provJSON, run.Error, run.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.ReconRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, parser_id, status, record, provenance, error, created_at
		 FROM recon_runs WHERE id = ?`, runID)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ReconRun, error) {
	query := `SELECT id, source, parser_id, status, record, provenance, error, created_at
	          FROM recon_runs WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.ParserID != "" {
		query += ` AND parser_id = ?`
		args = append(args, filter.ParserID)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.ReconRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: list runs iterate")
}

func marshalRun(run *model.ReconRun) (recordJSON, provJSON string, err error) {
	if run.Record != nil {
		buf, err := json.Marshal(run.Record)
		if err != nil {
			return "", "", err
		}
		recordJSON = string(buf)
	}
	if run.Provenance != nil {
		buf, err := json.Marshal(run.Provenance)
		if err != nil {
			return "", "", err
		}
		provJSON = string(buf)
	}
	return recordJSON, provJSON, nil
}

// scanRun decodes one run row via the given Scan function, shared by the
// single-row and multi-row paths.
func scanRun(scan func(dest ...any) error) (*model.ReconRun, error) {
	var run model.ReconRun
	var status, recordJSON, provJSON sql.NullString
	var errText sql.NullString

	if err := scan(&run.ID, &run.Source, &run.ParserID, &status, &recordJSON, &provJSON, &errText, &run.CreatedAt); err != nil {
		return nil, err
	}
	run.Status = model.RunStatus(status.String)
	run.Error = errText.String

	if recordJSON.Valid && recordJSON.String != "" {
		run.Record = &model.WorkingRecord{}
		if err := json.Unmarshal([]byte(recordJSON.String), run.Record); err != nil {
			return nil, err
		}
	}
	if provJSON.Valid && provJSON.String != "" {
		run.Provenance = &model.Provenance{}
		if err := json.Unmarshal([]byte(provJSON.String), run.Provenance); err != nil {
			return nil, err
		}
	}
	return &run, nil
}
