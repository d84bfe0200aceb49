package backend

import (
	"errors"
	"fmt"
)

// Duration is a running time split the way the service reports it.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// CatalogDuration is a decoded catalog lookup. SongTable rows run parallel to
// Artists: SongTable[r][c] is a song by Artists[c], "" when that column has
// no song in row r.
type CatalogDuration struct {
	ArtistName string     `json:"artist_name"`
	Artists    []string   `json:"artists"`
	SongTable  [][]string `json:"song_table"`
	Duration   Duration   `json:"duration"`
}

// VibeSearchRequest selects one page of a vibe search.
type VibeSearchRequest struct {
	Query  string
	Artist string
	Page   int
}

// VibeMatch is one song the service judged relevant to the query. Year is
// passed through exactly as the service sent it.
type VibeMatch struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   string `json:"year,omitempty"`
	URL    string `json:"url,omitempty"`
}

// VibeSearchResult is one server page of vibe search matches.
type VibeSearchResult struct {
	Query        string      `json:"query"`
	Songs        []VibeMatch `json:"relevant_songs"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
	CurrentPage  int         `json:"current_page"`
}

type catalogPayload struct {
	ArtistName *string          `json:"artist_name"`
	Artists    []string         `json:"artists"`
	SongTable  [][]string       `json:"song_table"`
	Duration   *durationPayload `json:"duration"`
}

type durationPayload struct {
	Hours   *int `json:"hours"`
	Minutes *int `json:"minutes"`
	Seconds *int `json:"seconds"`
}

func (p catalogPayload) decode() (CatalogDuration, error) {
	if p.ArtistName == nil || *p.ArtistName == "" {
		return CatalogDuration{}, errors.New("missing artist_name")
	}
	if p.Artists == nil {
		return CatalogDuration{}, errors.New("missing artists")
	}
	if p.Duration == nil || p.Duration.Hours == nil || p.Duration.Minutes == nil || p.Duration.Seconds == nil {
		return CatalogDuration{}, errors.New("missing or incomplete duration")
	}
	for i, row := range p.SongTable {
		if len(row) != len(p.Artists) {
			return CatalogDuration{}, fmt.Errorf("song_table row %d has %d cells for %d artists", i, len(row), len(p.Artists))
		}
	}

	return CatalogDuration{
		ArtistName: *p.ArtistName,
		Artists:    p.Artists,
		SongTable:  p.SongTable,
		Duration: Duration{
			Hours:   *p.Duration.Hours,
			Minutes: *p.Duration.Minutes,
			Seconds: *p.Duration.Seconds,
		},
	}, nil
}

type vibeRequestPayload struct {
	Query  string `json:"query"`
	Artist string `json:"artist"`
	Page   int    `json:"page"`
}

type vibePayload struct {
	Query        string          `json:"query"`
	Songs        []*matchPayload `json:"relevant_songs"`
	TotalPages   *int            `json:"total_pages"`
	TotalResults *int            `json:"total_results"`
	CurrentPage  *int            `json:"current_page"`
}

type matchPayload struct {
	Title  *string `json:"title"`
	Artist *string `json:"artist"`
	Year   *string `json:"year"`
	URL    *string `json:"url"`
}

func (p vibePayload) decode(requestedPage int) (VibeSearchResult, error) {
	if p.Songs == nil {
		return VibeSearchResult{}, errors.New("missing relevant_songs")
	}
	if p.TotalPages == nil || p.TotalResults == nil {
		return VibeSearchResult{}, errors.New("missing total_pages or total_results")
	}
	if *p.TotalPages < 0 || *p.TotalResults < 0 {
		return VibeSearchResult{}, errors.New("negative totals")
	}

	songs := make([]VibeMatch, 0, len(p.Songs))
	for i, s := range p.Songs {
		if s == nil || s.Title == nil || s.Artist == nil {
			return VibeSearchResult{}, fmt.Errorf("relevant_songs[%d] missing title or artist", i)
		}
		m := VibeMatch{Title: *s.Title, Artist: *s.Artist}
		if s.Year != nil {
			m.Year = *s.Year
		}
		if s.URL != nil {
			m.URL = *s.URL
		}
		songs = append(songs, m)
	}

	page := requestedPage
	if p.CurrentPage != nil {
		page = *p.CurrentPage
	}

	return VibeSearchResult{
		Query:        p.Query,
		Songs:        songs,
		TotalPages:   *p.TotalPages,
		TotalResults: *p.TotalResults,
		CurrentPage:  page,
	}, nil
}
