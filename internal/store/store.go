// Package store persists intake submissions so a form can be generated
// later from the saved record.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zed-charania/Meridian/internal/intake"
)

// StatusSubmitted is the status of every newly saved submission.
const StatusSubmitted = "submitted"

// ErrNotFound is returned when a submission id is unknown or the store is
// empty.
var ErrNotFound = errors.New("submission not found")

// Submission is one saved intake record.
type Submission struct {
	ID        uuid.UUID     `json:"id"`
	Status    string        `json:"status"`
	Data      intake.Record `json:"data"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Store saves and loads submissions. Implementations are safe for
// concurrent use.
type Store interface {
	Save(ctx context.Context, rec intake.Record) (Submission, error)
	Get(ctx context.Context, id uuid.UUID) (Submission, error)
	Latest(ctx context.Context) (Submission, error)
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendNone     = "none"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DatabaseURL string
	RedisURL    string
}

// Open connects the configured backend. It returns a nil Store for
// BackendNone.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendNone:
		return nil, nil
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres store requires a database url")
		}
		s, err := OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis store requires a redis url")
		}
		s, err := OpenRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

func newSubmission(rec intake.Record, now time.Time) Submission {
	now = now.UTC().Truncate(time.Microsecond)
	return Submission{
		ID:        uuid.New(),
		Status:    StatusSubmitted,
		Data:      rec,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
