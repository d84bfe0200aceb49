package store

import (
	"context"
	"strings"

	"vibecatalog/internal/catalog"
)

// LoadCatalogForArtist fetches and normalizes artist's catalog, replacing
// the roster and song list and returning to page 1. On failure the previous
// catalog stays in place alongside the error.
func (s *Store) LoadCatalogForArtist(ctx context.Context, artist string) error {
	artist = strings.TrimSpace(artist)
	if artist == "" {
		return ErrNoArtist
	}

	s.mu.Lock()
	ticket := s.catalogSeq.Next()
	s.applyCatalog(catalog.LoadRequested{Artist: artist})
	s.mu.Unlock()

	s.logger.Debug("catalog lookup #%d for %q", ticket, artist)

	if err := s.authorize(ctx); err != nil {
		return s.finishCatalog(ticket, catalog.LoadFailed{Message: errorMessage(err, "Failed to fetch catalog")}, err)
	}

	resp, err := s.catalogSrc.CatalogDuration(ctx, artist)
	if err != nil {
		s.logger.Warn("catalog lookup for %q failed: %v", artist, err)
		return s.finishCatalog(ticket, catalog.LoadFailed{Message: errorMessage(err, "Failed to fetch catalog")}, err)
	}

	c := catalog.Normalize(resp)
	s.logger.Info("loaded catalog for %q: %d artists, %d songs", artist, len(c.Artists), len(c.Songs))
	return s.finishCatalog(ticket, catalog.LoadSucceeded{Catalog: c}, nil)
}

// finishCatalog applies the outcome of request ticket unless a newer catalog
// request has been issued since.
func (s *Store) finishCatalog(ticket uint64, e catalog.Event, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.catalogSeq.Current(ticket) {
		s.logger.Debug("discarding stale catalog response #%d", ticket)
		return ErrSuperseded
	}
	s.applyCatalog(e)
	return err
}

// SelectArtist scopes the displayed songs to one artist and returns to page 1.
func (s *Store) SelectArtist(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyCatalog(catalog.ArtistSelected{ID: id})
}

// ChangeCatalogPage moves the catalog page window.
func (s *Store) ChangeCatalogPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyCatalog(catalog.PageChanged{Page: page})
}

// SetItemsPerPage resizes the catalog page window.
func (s *Store) SetItemsPerPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyCatalog(catalog.ItemsPerPageChanged{ItemsPerPage: n})
}

func (s *Store) applyCatalog(e catalog.Event) {
	s.catalogSt = catalog.Reduce(s.catalogSt, e)
	s.changed()
}
