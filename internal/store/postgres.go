package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/zed-charania/Meridian/internal/intake"
)

const schema = `
CREATE TABLE IF NOT EXISTS n400_forms (
	id         UUID PRIMARY KEY,
	status     TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS n400_forms_created_at_idx ON n400_forms (created_at DESC);
`

// PostgresStore keeps submissions in the n400_forms table.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenPostgres connects to databaseURL and makes sure the table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(20)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &PostgresStore{db: db, now: time.Now}, nil
}

func (s *PostgresStore) Save(ctx context.Context, rec intake.Record) (Submission, error) {
	sub := newSubmission(rec, s.now())
	data, err := json.Marshal(rec)
	if err != nil {
		return Submission{}, fmt.Errorf("marshal submission: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO n400_forms (id, status, data, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.Status, string(data), sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, data, created_at, updated_at FROM n400_forms WHERE id = $1`, id)
	return scanSubmission(row)
}

func (s *PostgresStore) Latest(ctx context.Context) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, data, created_at, updated_at FROM n400_forms ORDER BY created_at DESC LIMIT 1`)
	return scanSubmission(row)
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func scanSubmission(row *sql.Row) (Submission, error) {
	var (
		sub  Submission
		data []byte
	)
	err := row.Scan(&sub.ID, &sub.Status, &data, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, fmt.Errorf("load submission: %w", err)
	}

	sub.Data, err = intake.Parse(data)
	if err != nil {
		return Submission{}, fmt.Errorf("decode submission %s: %w", sub.ID, err)
	}
	return sub, nil
}
