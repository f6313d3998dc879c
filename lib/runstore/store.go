package runstore

import (
	"context"
	"database/sql"
	"time"

	"adaptogen-scraper/lib/timezone"

	_ "embed"

	"github.com/mazen160/go-random"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Run is a single collect or extract pass over the catalog.
type Run struct {
	Id         string
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	Processed  int64
	Succeeded  int64
	Failed     int64
}

func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r Run) SuccessRate() float64 {
	if r.Processed == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.Processed) * 100
}

// Record inserts the run, generating an id when the caller left it
// empty, and returns the id under which it was stored.
func (s Store) Record(ctx context.Context, run Run) (string, error) {
	id := run.Id
	if id == "" {
		var err error
		id, err = random.String(8)
		if err != nil {
			return "", err
		}
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO run (id, kind, started_at, finished_at, processed, succeeded, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		run.Kind,
		run.StartedAt.Unix(),
		run.FinishedAt.Unix(),
		run.Processed,
		run.Succeeded,
		run.Failed,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s Store) Recent(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, kind, started_at, finished_at, processed, succeeded, failed
		FROM run
		ORDER BY started_at DESC, id
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt int64
		var finishedAt int64
		err := rows.Scan(
			&run.Id,
			&run.Kind,
			&startedAt,
			&finishedAt,
			&run.Processed,
			&run.Succeeded,
			&run.Failed,
		)
		if err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(startedAt, 0).In(timezone.Location)
		run.FinishedAt = time.Unix(finishedAt, 0).In(timezone.Location)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
