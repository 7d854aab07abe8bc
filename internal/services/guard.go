// guard.go
//
// Domain services behind the notes feed
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"sync"
	"time"

	"github.com/localnerve/notesdb/internal/config"
	"github.com/redis/go-redis/v9"
)

// Guard claims short-lived idempotency keys
type Guard interface {
	// Claim returns false if key is already held
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// NewGuard returns a Redis guard when REDIS_ADDR is set and an in-process
// guard otherwise. The returned func closes any connection.
func NewGuard(cfg *config.Config) (Guard, func() error) {
	if cfg.RedisAddr == "" {
		return NewMemoryGuard(), func() error { return nil }
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return NewRedisGuard(client), client.Close
}

// MemoryGuard is a Guard for a single process
type MemoryGuard struct {
	mu    sync.Mutex
	until map[string]time.Time
	Now   func() time.Time
}

// NewMemoryGuard creates an empty guard
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{until: make(map[string]time.Time), Now: time.Now}
}

func (g *MemoryGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.Now()
	for k, exp := range g.until {
		if !now.Before(exp) {
			delete(g.until, k)
		}
	}
	if _, held := g.until[key]; held {
		return false, nil
	}
	g.until[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.until, key)
	return nil
}

// RedisGuard shares claims across processes with SET NX
type RedisGuard struct {
	client *redis.Client
	prefix string
}

// NewRedisGuard wraps a connected client
func NewRedisGuard(client *redis.Client) *RedisGuard {
	return &RedisGuard{client: client, prefix: "notesdb:guard:"}
}

func (g *RedisGuard) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+key, "1", ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.prefix+key).Err()
}

// Ping checks the Redis connection
func (g *RedisGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}
