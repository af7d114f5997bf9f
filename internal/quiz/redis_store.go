package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonathan/directionwise/internal/types"
)

const redisKeyPrefix = "dw:quiz:"

// RedisStore keeps quiz sessions in Redis so any server replica can finish
// a quiz started on another.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to redisURL and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	slog.Info("quiz: redis session store connected", slog.String("addr", opts.Addr), slog.Duration("ttl", ttl))
	return &RedisStore{rdb: rdb, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return redisKeyPrefix + id
}

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(id), "[]", s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create quiz session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Append(ctx context.Context, id string, answer types.QuizAnswer) (int, error) {
	key := sessionKey(id)
	var count int

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		var answers []types.QuizAnswer
		if err := json.Unmarshal(raw, &answers); err != nil {
			return fmt.Errorf("corrupt quiz session %s: %w", id, err)
		}
		answers = upsertAnswer(answers, answer)
		count = len(answers)

		data, err := json.Marshal(answers)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrSessionNotFound) {
			return 0, err
		}
		if err != nil {
			return 0, fmt.Errorf("failed to append quiz answer: %w", err)
		}
		return count, nil
	}
	return 0, fmt.Errorf("failed to append quiz answer: concurrent updates to session %s", id)
}

func (s *RedisStore) Take(ctx context.Context, id string) ([]types.QuizAnswer, error) {
	raw, err := s.rdb.GetDel(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to take quiz session: %w", err)
	}
	var answers []types.QuizAnswer
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("corrupt quiz session %s: %w", id, err)
	}
	return answers, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
