package catalog

import (
	"fmt"
	"strings"
)

// Artists returns the roster with selection flags.
func Artists(s State) []Artist {
	return s.Fetch.Data.Artists
}

// SelectedArtist returns the selected artist, if any.
func SelectedArtist(s State) (Artist, bool) {
	for _, a := range s.Fetch.Data.Artists {
		if a.IsSelected {
			return a, true
		}
	}
	return Artist{}, false
}

// ScopedSongs returns every song in the current scope: all songs until an
// artist is selected, then the songs matching that artist by id or name.
func ScopedSongs(s State) []Song {
	songs := s.Fetch.Data.Songs
	if s.Filter == "" {
		return songs
	}

	var name string
	for _, a := range s.Fetch.Data.Artists {
		if a.ID == s.Filter {
			name = a.Name
			break
		}
	}

	scoped := make([]Song, 0, len(songs))
	for _, song := range songs {
		if song.ArtistID == s.Filter || (name != "" && strings.EqualFold(song.Artist, name)) {
			scoped = append(scoped, song)
		}
	}
	return scoped
}

// PageSongs returns the songs on the current page of the current scope.
func PageSongs(s State) []Song {
	songs := ScopedSongs(s)
	per := s.Pagination.ItemsPerPage
	if per <= 0 {
		per = DefaultItemsPerPage
	}
	page := s.Pagination.CurrentPage
	if page < 1 {
		page = 1
	}

	start := (page - 1) * per
	if start >= len(songs) {
		return []Song{}
	}
	end := start + per
	if end > len(songs) {
		end = len(songs)
	}
	return songs[start:end]
}

// IsLoading reports whether a lookup is in flight.
func IsLoading(s State) bool {
	return s.Fetch.Loading
}

// Error returns the last lookup failure, "" if none.
func Error(s State) string {
	return s.Fetch.Error
}

// FormattedDuration renders d as e.g. "1 hour 5 minutes", or "0 seconds".
func FormattedDuration(d Duration) string {
	var parts []string
	for _, p := range []struct {
		n    int
		unit string
	}{
		{d.Hours, "hour"},
		{d.Minutes, "minute"},
		{d.Seconds, "second"},
	} {
		switch {
		case p.n == 1:
			parts = append(parts, fmt.Sprintf("1 %s", p.unit))
		case p.n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", p.n, p.unit))
		}
	}

	if len(parts) == 0 {
		return "0 seconds"
	}
	return strings.Join(parts, " ")
}
