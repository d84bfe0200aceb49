package store

import (
	"context"
	"strings"

	"vibecatalog/internal/backend"
	"vibecatalog/internal/vibe"
)

// SearchVibe searches artist's songs for query and shows the requested page.
// Nothing is fetched when that exact page is already loaded. A new result set
// always arrives unfiltered.
func (s *Store) SearchVibe(ctx context.Context, query, artist string, page int) error {
	query = strings.TrimSpace(query)
	artist = strings.TrimSpace(artist)
	if page < 1 {
		page = 1
	}

	if query == "" {
		s.mu.Lock()
		s.vibeSeq.Next()
		s.applyVibe(vibe.SearchFailed{Message: "Query is required"})
		s.mu.Unlock()
		return ErrNoQuery
	}

	s.mu.Lock()
	needed := vibe.NeedsSearch(s.vibeSt, query, artist, page)
	s.mu.Unlock()
	if !needed {
		s.logger.Debug("vibe search %q/%q page %d already loaded", query, artist, page)
		return nil
	}

	return s.search(ctx, query, artist, page)
}

// FilterByYear narrows the current page to one year option, or clears the
// filter for vibe.AllYearsID. No request is made and the page is unchanged.
func (s *Store) FilterByYear(yearID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyVibe(vibe.YearSelected{ID: yearID})
}

// ChangeVibePage fetches another page of the current search. Any year filter
// is dropped immediately since the songs it applied to are being replaced.
func (s *Store) ChangeVibePage(ctx context.Context, page int) error {
	s.mu.Lock()
	query, artist := s.vibeSt.Query, s.vibeSt.Artist
	if query == "" {
		s.mu.Unlock()
		return ErrNoQuery
	}
	if page < 1 {
		page = 1
	}
	if total := s.vibeSt.Pagination.TotalPages; total > 0 && page > total {
		page = total
	}
	s.applyVibe(vibe.PageChangeRequested{Page: page})
	s.mu.Unlock()

	return s.search(ctx, query, artist, page)
}

func (s *Store) search(ctx context.Context, query, artist string, page int) error {
	s.mu.Lock()
	ticket := s.vibeSeq.Next()
	s.applyVibe(vibe.SearchRequested{Query: query, Artist: artist, Page: page})
	s.mu.Unlock()

	s.logger.Debug("vibe search #%d %q/%q page %d", ticket, query, artist, page)

	if err := s.authorize(ctx); err != nil {
		return s.finishVibe(ticket, vibe.SearchFailed{Message: errorMessage(err, "Failed to search for vibes")}, err)
	}

	res, err := s.vibeSrc.VibeSearch(ctx, backend.VibeSearchRequest{Query: query, Artist: artist, Page: page})
	if err != nil {
		s.logger.Error("vibe search %q/%q page %d failed: %v", query, artist, page, err)
		return s.finishVibe(ticket, vibe.SearchFailed{Message: errorMessage(err, "Failed to search for vibes")}, err)
	}

	songs := vibe.Normalize(res)
	s.logger.Info("vibe search %q/%q page %d: %d songs of %d", query, artist, page, len(songs), res.TotalResults)
	return s.finishVibe(ticket, vibe.SearchSucceeded{
		Songs:      songs,
		Page:       page,
		TotalPages: res.TotalPages,
		TotalItems: res.TotalResults,
	}, nil)
}

// finishVibe applies the outcome of request ticket unless a newer search has
// been issued since.
func (s *Store) finishVibe(ticket uint64, e vibe.Event, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.vibeSeq.Current(ticket) {
		s.logger.Debug("discarding stale vibe response #%d", ticket)
		return ErrSuperseded
	}
	s.applyVibe(e)
	return err
}

func (s *Store) applyVibe(e vibe.Event) {
	s.vibeSt = vibe.Reduce(s.vibeSt, e)
	s.changed()
}
