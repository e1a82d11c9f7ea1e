// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/nooblol/internal/platform/constants"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/pkg/uuid"
)

// RedisStore implements [Store] on Redis.
//
// Keys:
//   - session:<id>            JSON session, expires after ttl without reads
//   - session:user:<userId>   set of the user's session ids
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

// TTL returns the idle lifetime of a session.
func (store *RedisStore) TTL() time.Duration {
	return store.ttl
}

func sessionKey(id string) string {
	return constants.RedisPrefixSession + id
}

func userKey(userID string) string {
	return constants.RedisPrefixUserSession + userID
}

/*
Create stores a new session and registers it in the user index.
*/
func (store *RedisStore) Create(context context.Context, userID string, role sec.Role) (*Session, error) {
	current := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		CreatedAt: store.now().UTC(),
	}

	payload, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	// Session, index membership and index expiry are written atomically
	_, err = store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Set(context, sessionKey(current.ID), payload, store.ttl)
		pipe.SAdd(context, userKey(userID), current.ID)
		pipe.Expire(context, userKey(userID), store.ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return current, nil
}

/*
Get reads a session and slides its expiry forward with GETEX.
*/
func (store *RedisStore) Get(context context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	raw, err := store.client.GetEx(context, sessionKey(id), store.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	current := &Session{}
	if err := json.Unmarshal(raw, current); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}
	current.ID = id

	// The index must outlive its newest member
	if err := store.client.Expire(context, userKey(current.UserID), store.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis_session_index_touch_failed: %w", err)
	}

	return current, nil
}

/*
Delete removes one session and its index entry.
*/
func (store *RedisStore) Delete(context context.Context, id string) error {
	if id == "" {
		return nil
	}

	current, err := store.Get(context, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	_, err = store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Del(context, sessionKey(id))
		pipe.SRem(context, userKey(current.UserID), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}

/*
DeleteUser removes every session listed in the user index, then the index.
*/
func (store *RedisStore) DeleteUser(context context.Context, userID string) error {
	ids, err := store.client.SMembers(context, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_session_index_read_failed: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userKey(userID))

	if err := store.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_user_failed: %w", err)
	}

	return nil
}
