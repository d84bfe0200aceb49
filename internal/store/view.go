package store

import (
	"vibecatalog/internal/catalog"
	"vibecatalog/internal/vibe"
)

// View is everything the UI renders, derived from the current state.
type View struct {
	Session  string       `json:"session"`
	Revision uint64       `json:"revision"`
	Catalog  CatalogView  `json:"catalog"`
	Vibe     vibe.Results `json:"vibe"`
}

// CatalogView is the derived catalog browsing panel.
type CatalogView struct {
	SearchedArtist    string             `json:"searchedArtist"`
	Artists           []catalog.Artist   `json:"artists"`
	Songs             []catalog.Song     `json:"songs"`
	Pagination        catalog.Pagination `json:"pagination"`
	Duration          catalog.Duration   `json:"duration"`
	FormattedDuration string             `json:"formattedDuration"`
	Loading           bool               `json:"loading"`
	Error             string             `json:"error,omitempty"`
}

// Snapshot returns the current View.
func (s *Store) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Store) viewLocked() View {
	c := s.catalogSt
	artists := catalog.Artists(c)
	if artists == nil {
		artists = []catalog.Artist{}
	}

	return View{
		Session:  s.id,
		Revision: s.revision,
		Catalog: CatalogView{
			SearchedArtist:    c.Fetch.Data.SearchedArtist,
			Artists:           artists,
			Songs:             catalog.PageSongs(c),
			Pagination:        c.Pagination,
			Duration:          c.Fetch.Data.Duration,
			FormattedDuration: catalog.FormattedDuration(c.Fetch.Data.Duration),
			Loading:           catalog.IsLoading(c),
			Error:             catalog.Error(c),
		},
		Vibe: vibe.View(s.vibeSt),
	}
}
