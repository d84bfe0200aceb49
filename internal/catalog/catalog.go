// Package catalog holds the browsing state for an artist's catalog: the
// roster of artists, every song found for them, and a client side page
// window over the songs of the selected artist.
package catalog

import (
	"fmt"
	"strings"

	"vibecatalog/internal/backend"
	"vibecatalog/internal/fetch"
)

// DefaultItemsPerPage is the page size used when none is configured.
const DefaultItemsPerPage = 15

// Artist is one column of a catalog lookup.
type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsSelected bool   `json:"isSelected"`
}

// Song is one non-empty cell of the catalog song grid.
type Song struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration string `json:"duration"`
	ArtistID string `json:"artistId"`
}

// Duration is the total running time of a catalog.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Catalog is a normalized catalog lookup.
type Catalog struct {
	SearchedArtist string   `json:"searchedArtist"`
	Artists        []Artist `json:"artists"`
	Songs          []Song   `json:"songs"`
	Duration       Duration `json:"duration"`
}

// Pagination describes the client computed page window.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
}

// State is the catalog slice of the store. Songs are only ever held in full;
// the displayed page is derived on read.
type State struct {
	Fetch      fetch.Lifecycle[Catalog]
	Requested  string
	Filter     string // selected artist id scoping the songs, "" for all
	Pagination Pagination
}

// NewState returns an empty catalog state paging itemsPerPage songs at a time.
func NewState(itemsPerPage int) State {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	return State{
		Pagination: Pagination{
			CurrentPage:  1,
			TotalPages:   1,
			ItemsPerPage: itemsPerPage,
		},
	}
}

// Normalize flattens a catalog lookup. The searched artist is always first in
// the roster and selected, wherever its column sits in the song grid. Songs
// are numbered in row major order, skipping empty cells.
func Normalize(resp backend.CatalogDuration) Catalog {
	searchedCol := -1
	for i, name := range resp.Artists {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(resp.ArtistName)) {
			searchedCol = i
			break
		}
	}

	artists := make([]Artist, 0, len(resp.Artists)+1)
	artists = append(artists, Artist{ID: artistID(0), Name: resp.ArtistName, IsSelected: true})

	colIDs := make([]string, len(resp.Artists))
	for col, name := range resp.Artists {
		if col == searchedCol {
			colIDs[col] = artists[0].ID
			continue
		}
		a := Artist{ID: artistID(len(artists)), Name: name}
		artists = append(artists, a)
		colIDs[col] = a.ID
	}

	var songs []Song
	for _, row := range resp.SongTable {
		for col, cell := range row {
			if col >= len(resp.Artists) || strings.TrimSpace(cell) == "" {
				continue
			}
			songs = append(songs, Song{
				ID:       fmt.Sprintf("song-%d", len(songs)+1),
				Name:     cell,
				Artist:   resp.Artists[col],
				ArtistID: colIDs[col],
			})
		}
	}

	return Catalog{
		SearchedArtist: resp.ArtistName,
		Artists:        artists,
		Songs:          songs,
		Duration: Duration{
			Hours:   resp.Duration.Hours,
			Minutes: resp.Duration.Minutes,
			Seconds: resp.Duration.Seconds,
		},
	}
}

func artistID(i int) string {
	return fmt.Sprintf("artist-%d", i+1)
}

// pageCount is ceil(total/perPage), never less than 1 so an empty list still
// has one (empty) page.
func pageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
