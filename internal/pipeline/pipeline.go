// Package pipeline assembles the lookup chain behind a session: the backend
// client, the optional Redis catalog cache in front of it, and the store that
// drives both.
package pipeline

import (
	"context"
	"fmt"

	"vibecatalog/internal/backend"
	"vibecatalog/internal/cache"
	"vibecatalog/internal/config"
	"vibecatalog/internal/logger"
	"vibecatalog/internal/shutdown"
	"vibecatalog/internal/store"
)

// SessionCookieName is the cookie the backend keys its sessions on.
const SessionCookieName = "session"

type Hooks struct {
	// OnCacheUnavailable is called when Redis is configured but unreachable
	// and lookups go straight to the backend.
	OnCacheUnavailable func(err error)
}

// Build wires a Store for cfg. Resources that need closing are registered
// with sh.
func Build(ctx context.Context, cfg config.Config, log *logger.Logger, sh *shutdown.Handler, hooks Hooks) (*store.Store, error) {
	client := backend.New(cfg.BackendURL, cfg.RequestTimeout)
	if cfg.SessionCookie != "" {
		if err := client.SetSessionCookie(SessionCookieName, cfg.SessionCookie); err != nil {
			return nil, fmt.Errorf("failed to set session cookie: %w", err)
		}
		log.Debug("Using session cookie from configuration")
	}

	var catalogSrc store.CatalogSource = client
	if cfg.CacheEnabled() {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("Catalog cache disabled: %v", err)
			if hooks.OnCacheUnavailable != nil {
				hooks.OnCacheUnavailable(err)
			}
		} else {
			log.Debug("Caching catalogs in Redis at %s for %s", cfg.RedisAddr, cfg.CacheTTL)
			catalogSrc = cache.NewCatalog(rdb, client, cfg.CacheTTL, log)
			sh.AddCleanup("redis", func(context.Context) error {
				return rdb.Close()
			})
		}
	}

	st := store.New(store.Options{
		Catalog:      catalogSrc,
		Vibe:         client,
		Auth:         client,
		ItemsPerPage: cfg.ItemsPerPage,
		Logger:       log,
	})
	log.Debug("Session %s ready against %s", st.ID(), cfg.BackendURL)
	return st, nil
}
