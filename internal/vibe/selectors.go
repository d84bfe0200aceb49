package vibe

import "vibecatalog/internal/fetch"

// DisplayedSongs returns the filtered songs while a year filter is active,
// otherwise the current server page.
func DisplayedSongs(s State) []Song {
	if s.IsFiltered {
		return s.FilteredSongs
	}
	return s.Fetch.Data
}

// ShowPagination reports whether the pager should be offered.
func ShowPagination(s State) bool {
	return !s.IsFiltered && s.Pagination.TotalPages > 1
}

// NeedsSearch reports whether a search for (query, artist, page) must go to
// the server. A repeated request for the page already loaded is skipped.
func NeedsSearch(s State, query, artist string, page int) bool {
	if s.Fetch.Phase != fetch.PhaseSuccess {
		return true
	}
	return query != s.Query || artist != s.Artist || page != s.Pagination.CurrentPage
}

// Results is the combined view rendered by the search results panel.
type Results struct {
	Songs          []Song       `json:"songs"`
	Query          string       `json:"query"`
	Artist         string       `json:"artist"`
	TotalItems     int          `json:"totalItems"`
	TotalPages     int          `json:"totalPages"`
	CurrentPage    int          `json:"currentPage"`
	IsFiltered     bool         `json:"isFiltered"`
	ShowPagination bool         `json:"showPagination"`
	YearOptions    []YearOption `json:"yearOptions"`
	SelectedYear   string       `json:"selectedYear"`
	Loading        bool         `json:"loading"`
	Error          string       `json:"error,omitempty"`
}

// View derives the results panel from s.
func View(s State) Results {
	songs := DisplayedSongs(s)
	if songs == nil {
		songs = []Song{}
	}
	return Results{
		Songs:          songs,
		Query:          s.Query,
		Artist:         s.Artist,
		TotalItems:     s.Pagination.TotalItems,
		TotalPages:     s.Pagination.TotalPages,
		CurrentPage:    s.Pagination.CurrentPage,
		IsFiltered:     s.IsFiltered,
		ShowPagination: ShowPagination(s),
		YearOptions:    s.YearOptions,
		SelectedYear:   s.SelectedYear,
		Loading:        s.Fetch.Loading,
		Error:          s.Fetch.Error,
	}
}
