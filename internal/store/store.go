package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/inspection-cli/internal/model"
)

// Open selects a backend by driver name, runs migrations, and returns a
// ready store.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "sqlite", "":
		s, err = NewSQLite(dsn)
	case "postgres":
		s, err = NewPostgres(ctx, dsn, DefaultPoolConfig())
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// ErrNotFound is returned when a run id has no stored row.
var ErrNotFound = eris.New("store: run not found")

// RunFilter specifies criteria for listing stored runs.
type RunFilter struct {
	Status   model.RunStatus `json:"status,omitempty"`
	ParserID string          `json:"parser_id,omitempty"`
	Limit    int             `json:"limit,omitempty"`
	Offset   int             `json:"offset,omitempty"`
}

// Store persists reconciliation runs as immutable audit artifacts: the
// canonical record and its provenance are written once and never updated.
type Store interface {
	SaveRun(ctx context.Context, run *model.ReconRun) error
	GetRun(ctx context.Context, runID string) (*model.ReconRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.ReconRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
