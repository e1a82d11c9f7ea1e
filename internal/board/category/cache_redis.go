// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/nooblol/internal/platform/constants"
)

const invalidateBatch = 100

// RedisCache implements [Cache] on Redis. Every key lives under the board: prefix.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed listing cache.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Load implements [Cache].
func (cache *RedisCache) Load(context context.Context, key string, target any) (bool, error) {
	payload, err := cache.client.Get(context, constants.RedisPrefixBoard+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_board_cache_get_failed: %w", err)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return false, fmt.Errorf("redis_board_cache_decode_failed: %w", err)
	}
	return true, nil
}

// Generation implements [Cache]. A missing counter reads as zero.
func (cache *RedisCache) Generation(context context.Context) (int64, error) {
	return readGeneration(context, cache.client)
}

type stringGetter interface {
	Get(context context.Context, key string) *redis.StringCmd
}

func readGeneration(context context.Context, client stringGetter) (int64, error) {
	generation, err := client.Get(context, constants.RedisKeyBoardGeneration).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_board_cache_generation_failed: %w", err)
	}
	return generation, nil
}

// Store implements [Cache]. The write runs under WATCH on the generation key.
func (cache *RedisCache) Store(context context.Context, key string, value any, generation int64) (bool, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("redis_board_cache_encode_failed: %w", err)
	}

	err = cache.client.Watch(context, func(tx *redis.Tx) error {
		current, err := readGeneration(context, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(context, func(pipe redis.Pipeliner) error {
			pipe.Set(context, constants.RedisPrefixBoard+key, payload, cache.ttl)
			return nil
		})
		return err
	}, constants.RedisKeyBoardGeneration)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("redis_board_cache_set_failed: %w", err)
	}
}

var errStaleGeneration = errors.New("board cache generation moved")

// Invalidate implements [Cache]. It advances the generation first, then
// scans the board: prefix and deletes in batches.
func (cache *RedisCache) Invalidate(context context.Context) error {
	if err := cache.client.Incr(context, constants.RedisKeyBoardGeneration).Err(); err != nil {
		return fmt.Errorf("redis_board_cache_incr_failed: %w", err)
	}

	iterator := cache.client.Scan(context, 0, constants.RedisPrefixBoard+"*", invalidateBatch).Iterator()

	keys := make([]string, 0, invalidateBatch)
	for iterator.Next(context) {
		keys = append(keys, iterator.Val())
		if len(keys) == invalidateBatch {
			if err := cache.client.Del(context, keys...).Err(); err != nil {
				return fmt.Errorf("redis_board_cache_del_failed: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("redis_board_cache_scan_failed: %w", err)
	}

	if len(keys) > 0 {
		if err := cache.client.Del(context, keys...).Err(); err != nil {
			return fmt.Errorf("redis_board_cache_del_failed: %w", err)
		}
	}
	return nil
}
