// Package vibe holds the state of a lyric vibe search: the page of matches
// returned by the server and an optional year filter over that page.
//
// Server pagination and the year filter never apply together. Selecting a
// year hides the pager; any page change or fresh result set drops the filter.
package vibe

import (
	"fmt"
	"sort"

	"vibecatalog/internal/backend"
	"vibecatalog/internal/dates"
	"vibecatalog/internal/fetch"
)

const (
	// AllYearsID is the option that disables year filtering.
	AllYearsID = "year-all"
	// AllYearsLabel is the display label of AllYearsID.
	AllYearsLabel = "All Years"
)

// Song is a vibe search match. Year is kept exactly as the server sent it.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   string `json:"year"`
	URL    string `json:"url"`
}

// YearOption is one bucket of the year filter.
type YearOption struct {
	ID         string `json:"id"`
	Year       string `json:"year"`
	IsSelected bool   `json:"isSelected"`
}

// Pagination is owned by the server for the current query.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// State is the vibe search slice of the store. Fetch.Data holds the songs of
// the current server page only, which is also the year filter's source.
type State struct {
	Query         string
	Artist        string
	Fetch         fetch.Lifecycle[[]Song]
	Pagination    Pagination
	YearOptions   []YearOption
	SelectedYear  string
	IsFiltered    bool
	FilteredSongs []Song
}

// NewState returns an empty search state.
func NewState() State {
	return State{
		Pagination:   Pagination{CurrentPage: 1, TotalPages: 1},
		YearOptions:  []YearOption{{ID: AllYearsID, Year: AllYearsLabel, IsSelected: true}},
		SelectedYear: AllYearsID,
	}
}

// Normalize converts a server page into songs with page local ids.
func Normalize(res backend.VibeSearchResult) []Song {
	songs := make([]Song, len(res.Songs))
	for i, m := range res.Songs {
		songs[i] = Song{
			ID:     fmt.Sprintf("vibe-song-%d", i),
			Title:  m.Title,
			Artist: m.Artist,
			Year:   m.Year,
			URL:    m.URL,
		}
	}
	return songs
}

// GenerateYearOptions buckets songs by extracted year. The "All Years" option
// comes first and is selected; the distinct years follow in ascending order.
func GenerateYearOptions(songs []Song) []YearOption {
	seen := make(map[string]bool)
	var years []string
	for _, s := range songs {
		if s.Year == "" {
			continue
		}
		y := dates.ExtractYear(s.Year)
		if y == "" || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}

	sort.SliceStable(years, func(i, j int) bool {
		a, aok := dates.YearValue(years[i])
		b, bok := dates.YearValue(years[j])
		switch {
		case aok && bok:
			if a != b {
				return a < b
			}
			return years[i] < years[j]
		case aok != bok:
			return aok
		default:
			return years[i] < years[j]
		}
	})

	options := make([]YearOption, 0, len(years)+1)
	options = append(options, YearOption{ID: AllYearsID, Year: AllYearsLabel, IsSelected: true})
	for i, y := range years {
		options = append(options, YearOption{ID: fmt.Sprintf("year-%d", i+1), Year: y})
	}
	return options
}

// FilterByYear keeps the songs whose extracted year equals year.
func FilterByYear(songs []Song, year string) []Song {
	filtered := make([]Song, 0, len(songs))
	for _, s := range songs {
		if s.Year != "" && dates.ExtractYear(s.Year) == year {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
