package catalog

// Event is a catalog state transition.
type Event interface {
	catalogEvent()
}

// LoadRequested starts a catalog lookup for Artist.
type LoadRequested struct{ Artist string }

// LoadSucceeded delivers a normalized lookup.
type LoadSucceeded struct{ Catalog Catalog }

// LoadFailed reports a failed lookup; prior data stays in place.
type LoadFailed struct{ Message string }

// ArtistSelected scopes the song list to one artist.
type ArtistSelected struct{ ID string }

// PageChanged moves the page window.
type PageChanged struct{ Page int }

// ItemsPerPageChanged resizes the page window.
type ItemsPerPageChanged struct{ ItemsPerPage int }

func (LoadRequested) catalogEvent()       {}
func (LoadSucceeded) catalogEvent()       {}
func (LoadFailed) catalogEvent()          {}
func (ArtistSelected) catalogEvent()      {}
func (PageChanged) catalogEvent()         {}
func (ItemsPerPageChanged) catalogEvent() {}

// Reduce applies e to s and returns the new state. s is not modified.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case LoadRequested:
		s.Fetch = s.Fetch.Request()
		s.Requested = e.Artist

	case LoadSucceeded:
		s.Fetch = s.Fetch.Succeed(e.Catalog)
		s.Filter = ""
		s.Pagination.CurrentPage = 1
		s.Pagination.TotalItems = len(e.Catalog.Songs)
		s.Pagination.TotalPages = pageCount(s.Pagination.TotalItems, s.Pagination.ItemsPerPage)

	case LoadFailed:
		s.Fetch = s.Fetch.Fail(e.Message)

	case ArtistSelected:
		if !hasArtist(s.Fetch.Data.Artists, e.ID) {
			return s
		}
		artists := make([]Artist, len(s.Fetch.Data.Artists))
		for i, a := range s.Fetch.Data.Artists {
			a.IsSelected = a.ID == e.ID
			artists[i] = a
		}
		s.Fetch.Data.Artists = artists
		s.Filter = e.ID
		s.Pagination.CurrentPage = 1
		s.Pagination.TotalItems = len(ScopedSongs(s))
		s.Pagination.TotalPages = pageCount(s.Pagination.TotalItems, s.Pagination.ItemsPerPage)

	case PageChanged:
		s.Pagination.CurrentPage = clamp(e.Page, 1, s.Pagination.TotalPages)

	case ItemsPerPageChanged:
		if e.ItemsPerPage <= 0 {
			return s
		}
		s.Pagination.ItemsPerPage = e.ItemsPerPage
		s.Pagination.TotalPages = pageCount(s.Pagination.TotalItems, e.ItemsPerPage)
		if s.Pagination.CurrentPage > s.Pagination.TotalPages {
			s.Pagination.CurrentPage = 1
		}
	}
	return s
}

func hasArtist(artists []Artist, id string) bool {
	for _, a := range artists {
		if a.ID == id {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
