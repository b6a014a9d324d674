package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	puzzleIndexKey   = "puzzles"
	maxUpdateRetries = 5
)

// RedisStore keeps puzzles as JSON snapshots in Redis, indexed by
// creation time in a sorted set.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func puzzleKey(id string) string {
	return "puzzle:" + id
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Save(ctx context.Context, p *Puzzle) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode puzzle %s: %w", p.ID, err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, puzzleKey(p.ID), b, 0)
		pipe.ZAdd(ctx, puzzleIndexKey, redis.Z{
			Score:  float64(p.CreatedAt.UnixNano()),
			Member: p.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save puzzle %s: %w", p.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Puzzle, error) {
	b, err := s.client.Get(ctx, puzzleKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPuzzleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get puzzle %s: %w", id, err)
	}
	return decodePuzzle(b)
}

func (s *RedisStore) List(ctx context.Context) ([]*Puzzle, error) {
	ids, err := s.client.ZRevRange(ctx, puzzleIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list puzzle ids: %w", err)
	}
	if len(ids) == 0 {
		return []*Puzzle{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = puzzleKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load puzzles: %w", err)
	}

	list := make([]*Puzzle, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			// Index entry without a snapshot.
			continue
		}
		p, err := decodePuzzle([]byte(str))
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
}

// Update applies fn inside an optimistic transaction on the puzzle key,
// retrying when a concurrent writer wins the race.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*Puzzle) error) (*Puzzle, error) {
	key := puzzleKey(id)
	var updated *Puzzle

	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrPuzzleNotFound
		}
		if err != nil {
			return err
		}
		p, err := decodePuzzle(b)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		out, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		if err == nil {
			updated = p
		}
		return err
	}

	for range maxUpdateRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("update puzzle %s: too much contention", id)
}

func decodePuzzle(b []byte) (*Puzzle, error) {
	var p Puzzle
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	return &p, nil
}
