// Package cache puts a Redis read-through cache in front of catalog lookups,
// which are slow because the service walks an artist's whole discography.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"vibecatalog/internal/backend"
	"vibecatalog/internal/logger"
)

const keyPrefix = "vibecatalog:catalog:"

// Source performs uncached catalog lookups.
type Source interface {
	CatalogDuration(ctx context.Context, artist string) (backend.CatalogDuration, error)
}

// Catalog serves catalog lookups from Redis when possible. Redis failures
// are logged and fall through to the source; they never fail a lookup.
type Catalog struct {
	rdb    redis.Cmdable
	src    Source
	ttl    time.Duration
	logger *logger.Logger
}

// NewCatalog wraps src with a cache whose entries expire after ttl.
func NewCatalog(rdb redis.Cmdable, src Source, ttl time.Duration, log *logger.Logger) *Catalog {
	return &Catalog{rdb: rdb, src: src, ttl: ttl, logger: log}
}

// Connect opens a Redis client and checks it answers.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// CatalogDuration returns the cached lookup for artist, fetching and storing
// it on a miss. Failed lookups are never cached.
func (c *Catalog) CatalogDuration(ctx context.Context, artist string) (backend.CatalogDuration, error) {
	key := Key(artist)

	if cached, ok := c.get(ctx, key); ok {
		c.logger.Debug("catalog cache hit for %q", artist)
		// Entries are shared across spellings; echo this caller's.
		cached.ArtistName = strings.TrimSpace(artist)
		return cached, nil
	}

	result, err := c.src.CatalogDuration(ctx, artist)
	if err != nil {
		return result, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("failed to encode catalog for cache: %v", err)
		return result, nil
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache catalog for %q: %v", artist, err)
	}
	return result, nil
}

func (c *Catalog) get(ctx context.Context, key string) (backend.CatalogDuration, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed: %v", err)
		}
		return backend.CatalogDuration{}, false
	}

	var cached backend.CatalogDuration
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn("discarding corrupt catalog cache entry %s: %v", key, err)
		return backend.CatalogDuration{}, false
	}
	return cached, true
}

// Key is the Redis key for an artist's catalog. Artist names differing only
// in case or surrounding whitespace share an entry.
func Key(artist string) string {
	return keyPrefix + strings.ToLower(strings.Join(strings.Fields(artist), " "))
}
