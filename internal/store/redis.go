package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zed-charania/Meridian/internal/intake"
)

const (
	redisPrefix = "n400:form:"
	redisIndex  = "n400:forms"
)

// RedisStore keeps each submission as a JSON value and indexes ids in a
// sorted set scored by creation time.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// OpenRedis connects to redisURL.
func OpenRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient creates a store from an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) key(id uuid.UUID) string {
	return redisPrefix + id.String()
}

func (s *RedisStore) Save(ctx context.Context, rec intake.Record) (Submission, error) {
	sub := newSubmission(rec, s.now())
	data, err := json.Marshal(sub)
	if err != nil {
		return Submission{}, fmt.Errorf("marshal submission: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(sub.ID), data, 0)
		pipe.ZAdd(ctx, redisIndex, redis.Z{
			Score:  float64(sub.CreatedAt.UnixMicro()),
			Member: sub.ID.String(),
		})
		return nil
	})
	if err != nil {
		return Submission{}, fmt.Errorf("save submission: %w", err)
	}
	return sub, nil
}

func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (Submission, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, fmt.Errorf("load submission: %w", err)
	}
	return decodeSubmission(raw)
}

func (s *RedisStore) Latest(ctx context.Context) (Submission, error) {
	ids, err := s.client.ZRevRange(ctx, redisIndex, 0, 0).Result()
	if err != nil {
		return Submission{}, fmt.Errorf("load latest submission: %w", err)
	}
	if len(ids) == 0 {
		return Submission{}, ErrNotFound
	}

	id, err := uuid.Parse(ids[0])
	if err != nil {
		return Submission{}, fmt.Errorf("corrupt submission index entry %q: %w", ids[0], err)
	}
	return s.Get(ctx, id)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// decodeSubmission unmarshals a stored submission, re-reading its data with
// the intake decoder so numbers keep their textual form.
func decodeSubmission(raw []byte) (Submission, error) {
	var stored struct {
		Submission
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return Submission{}, fmt.Errorf("unmarshal submission: %w", err)
	}

	sub := stored.Submission
	data, err := intake.Parse(stored.Data)
	if err != nil {
		return Submission{}, fmt.Errorf("decode submission %s: %w", sub.ID, err)
	}
	sub.Data = data
	return sub, nil
}
