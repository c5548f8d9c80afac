// internal/store/redis.go
//
// Redis implementation of the Store interface.
// Responsibilities:
//   - One JSON value per game under prefix+ID, expiring ttl after the last write.
//   - Insert via SET NX so two creators of the same ID cannot both succeed.
//   - Update via WATCH/MULTI so concurrent guesses on one game never overwrite each other.
//
// Notes:
//   - Game sessions survive restarts and are shared across replicas, unlike memory.go.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordle/apps/wordle/internal/game"
)

// maxUpdateRetries bounds optimistic-lock retries in Update.
const maxUpdateRetries = 10

// Redis implements Store with one JSON value per game.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Redis)

// WithTTL sets the expiration for games; refreshed on every write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Redis) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for games.
func WithPrefix(prefix string) Option {
	return func(s *Redis) {
		s.prefix = prefix
	}
}

// NewRedis creates a Redis store with its own client.
func NewRedis(address, password string, db int, opts ...Option) *Redis {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(rdb, opts...)
}

// NewRedisFromClient creates a Redis store from an existing client.
func NewRedisFromClient(client *backend.Client, opts ...Option) *Redis {
	s := &Redis{
		client: client,
		prefix: "wordle:game:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks connectivity.
func (s *Redis) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *Redis) Close() error {
	return s.client.Close()
}

func (s *Redis) key(id string) string {
	return s.prefix + id
}

func (s *Redis) Save(ctx context.Context, g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}
	if err := s.client.Set(ctx, s.key(g.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

func (s *Redis) Insert(ctx context.Context, g *game.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}
	ok, err := s.client.SetNX(ctx, s.key(g.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to insert into redis: %w", err)
	}
	if !ok {
		return ErrExists
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, id string) (*game.Game, error) {
	return s.load(ctx, s.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *backend.StringCmd
}

func (s *Redis) load(ctx context.Context, c getter, id string) (*game.Game, error) {
	val, err := c.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	var g game.Game
	if err := json.Unmarshal(val, &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return &g, nil
}

// Update uses WATCH/MULTI so concurrent guesses on one game cannot
// overwrite each other; a lost race is retried with fresh state.
func (s *Redis) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	key := s.key(id)
	txf := func(tx *backend.Tx) error {
		g, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}
		data, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, backend.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update %s: too much contention", id)
}

func (s *Redis) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
