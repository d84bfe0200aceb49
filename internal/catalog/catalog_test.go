package catalog

import (
	"fmt"
	"testing"

	"vibecatalog/internal/backend"
)

func sampleLookup() backend.CatalogDuration {
	return backend.CatalogDuration{
		ArtistName: "Radiohead",
		Artists:    []string{"Atoms for Peace", "Radiohead", "Thom Yorke"},
		SongTable: [][]string{
			{"Default", "Airbag", "Black Swan"},
			{"", "Creep", "Harrowdown Hill"},
			{"", "Nude", ""},
		},
		Duration: backend.Duration{Hours: 2, Minutes: 1, Seconds: 0},
	}
}

func loaded(t *testing.T, perPage int) State {
	t.Helper()
	s := NewState(perPage)
	s = Reduce(s, LoadRequested{Artist: "radiohead"})
	return Reduce(s, LoadSucceeded{Catalog: Normalize(sampleLookup())})
}

func TestNormalizeSearchedArtistFirst(t *testing.T) {
	c := Normalize(sampleLookup())

	if len(c.Artists) != 3 {
		t.Fatalf("expected 3 artists, got %d", len(c.Artists))
	}
	first := c.Artists[0]
	if first.Name != "Radiohead" || !first.IsSelected {
		t.Errorf("first artist = %+v, want selected Radiohead", first)
	}
	for _, a := range c.Artists[1:] {
		if a.IsSelected {
			t.Errorf("only the searched artist should be selected, %s is too", a.Name)
		}
	}
	if c.Artists[1].Name != "Atoms for Peace" || c.Artists[2].Name != "Thom Yorke" {
		t.Errorf("remaining artists should keep backend order, got %v", c.Artists)
	}
}

func TestNormalizeSearchedArtistMissingFromColumns(t *testing.T) {
	lookup := backend.CatalogDuration{
		ArtistName: "Unknown",
		Artists:    []string{"A", "B"},
		SongTable:  [][]string{{"a1", "b1"}},
	}
	c := Normalize(lookup)

	if len(c.Artists) != 3 || c.Artists[0].Name != "Unknown" || !c.Artists[0].IsSelected {
		t.Fatalf("searched artist should be prepended and selected, got %+v", c.Artists)
	}
	if c.Songs[0].ArtistID != c.Artists[1].ID {
		t.Errorf("song a1 should belong to A, got %s", c.Songs[0].ArtistID)
	}
}

func TestNormalizeFlattensGrid(t *testing.T) {
	c := Normalize(sampleLookup())

	want := []struct{ name, artist string }{
		{"Default", "Atoms for Peace"},
		{"Airbag", "Radiohead"},
		{"Black Swan", "Thom Yorke"},
		{"Creep", "Radiohead"},
		{"Harrowdown Hill", "Thom Yorke"},
		{"Nude", "Radiohead"},
	}
	if len(c.Songs) != len(want) {
		t.Fatalf("expected %d songs, got %d", len(want), len(c.Songs))
	}

	ids := map[string]string{}
	for _, a := range c.Artists {
		ids[a.Name] = a.ID
	}
	for i, w := range want {
		s := c.Songs[i]
		if s.Name != w.name || s.Artist != w.artist {
			t.Errorf("song %d = %s/%s, want %s/%s", i, s.Name, s.Artist, w.name, w.artist)
		}
		if s.ID != fmt.Sprintf("song-%d", i+1) {
			t.Errorf("song %d id = %s", i, s.ID)
		}
		if s.ArtistID != ids[w.artist] {
			t.Errorf("song %s artistId = %s, want %s", s.Name, s.ArtistID, ids[w.artist])
		}
	}
	if c.Duration != (Duration{Hours: 2, Minutes: 1}) {
		t.Errorf("duration = %+v", c.Duration)
	}
}

func TestLoadSucceededResetsPagination(t *testing.T) {
	s := NewState(2)
	s.Pagination.CurrentPage = 4
	s.Filter = "artist-3"

	s = Reduce(s, LoadSucceeded{Catalog: Normalize(sampleLookup())})

	if s.Pagination.CurrentPage != 1 {
		t.Errorf("currentPage = %d, want 1", s.Pagination.CurrentPage)
	}
	if s.Pagination.TotalItems != 6 || s.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v", s.Pagination)
	}
	if s.Filter != "" {
		t.Errorf("filter should be cleared, got %q", s.Filter)
	}
	if s.Fetch.Loading {
		t.Error("loading should be false after success")
	}
}

func TestSelectArtist(t *testing.T) {
	s := loaded(t, 2)
	s = Reduce(s, PageChanged{Page: 3})

	thom := s.Fetch.Data.Artists[2].ID
	s = Reduce(s, ArtistSelected{ID: thom})

	selected := 0
	for _, a := range Artists(s) {
		if a.IsSelected {
			selected++
			if a.ID != thom {
				t.Errorf("wrong artist selected: %s", a.Name)
			}
		}
	}
	if selected != 1 {
		t.Errorf("expected exactly one selected artist, got %d", selected)
	}

	songs := ScopedSongs(s)
	if len(songs) != 2 {
		t.Fatalf("expected 2 Thom Yorke songs, got %d", len(songs))
	}
	if s.Pagination.CurrentPage != 1 || s.Pagination.TotalItems != 2 || s.Pagination.TotalPages != 1 {
		t.Errorf("pagination = %+v", s.Pagination)
	}
}

func TestSelectArtistWithNoSongsKeepsOnePage(t *testing.T) {
	lookup := backend.CatalogDuration{
		ArtistName: "Solo",
		Artists:    []string{"Solo", "Ghost"},
		SongTable:  [][]string{{"one", ""}, {"two", ""}},
	}
	s := Reduce(NewState(15), LoadSucceeded{Catalog: Normalize(lookup)})

	s = Reduce(s, ArtistSelected{ID: s.Fetch.Data.Artists[1].ID})

	if len(PageSongs(s)) != 0 {
		t.Errorf("expected empty page, got %v", PageSongs(s))
	}
	if s.Pagination.TotalItems != 0 {
		t.Errorf("totalItems = %d, want 0", s.Pagination.TotalItems)
	}
	if s.Pagination.TotalPages < 1 {
		t.Errorf("totalPages = %d, must never drop below 1", s.Pagination.TotalPages)
	}
}

func TestSelectUnknownArtistIsNoop(t *testing.T) {
	s := loaded(t, 15)
	before := s

	s = Reduce(s, ArtistSelected{ID: "artist-99"})

	if s.Filter != before.Filter || s.Pagination != before.Pagination {
		t.Errorf("unknown artist changed state: %+v", s)
	}
	if !s.Fetch.Data.Artists[0].IsSelected {
		t.Error("selection should be untouched")
	}
}

func TestSelectDoesNotMutatePreviousState(t *testing.T) {
	s := loaded(t, 15)
	next := Reduce(s, ArtistSelected{ID: "artist-2"})

	if !s.Fetch.Data.Artists[0].IsSelected || s.Fetch.Data.Artists[1].IsSelected {
		t.Error("Reduce mutated the artists of its input state")
	}
	if !next.Fetch.Data.Artists[1].IsSelected {
		t.Error("new state should have artist-2 selected")
	}
}

func TestPageWindow(t *testing.T) {
	s := loaded(t, 4)

	if got := PageSongs(s); len(got) != 4 || got[0].Name != "Default" {
		t.Errorf("page 1 = %v", got)
	}

	s = Reduce(s, PageChanged{Page: 2})
	got := PageSongs(s)
	if len(got) != 2 || got[0].Name != "Harrowdown Hill" || got[1].Name != "Nude" {
		t.Errorf("page 2 = %v", got)
	}

	s = Reduce(s, PageChanged{Page: 9})
	if s.Pagination.CurrentPage != 2 {
		t.Errorf("page should clamp to last page, got %d", s.Pagination.CurrentPage)
	}
	s = Reduce(s, PageChanged{Page: 0})
	if s.Pagination.CurrentPage != 1 {
		t.Errorf("page should clamp to 1, got %d", s.Pagination.CurrentPage)
	}
}

func TestItemsPerPageChanged(t *testing.T) {
	s := loaded(t, 2)
	s = Reduce(s, PageChanged{Page: 3})

	s = Reduce(s, ItemsPerPageChanged{ItemsPerPage: 5})
	if s.Pagination.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", s.Pagination.TotalPages)
	}
	if s.Pagination.CurrentPage != 1 {
		t.Errorf("out of range page should reset to 1, got %d", s.Pagination.CurrentPage)
	}

	s = Reduce(s, ItemsPerPageChanged{ItemsPerPage: 0})
	if s.Pagination.ItemsPerPage != 5 {
		t.Errorf("non-positive page size should be ignored, got %d", s.Pagination.ItemsPerPage)
	}
}

func TestLoadFailedKeepsData(t *testing.T) {
	s := loaded(t, 15)
	s = Reduce(s, LoadRequested{Artist: "Nobody"})
	if !IsLoading(s) {
		t.Fatal("expected loading")
	}

	s = Reduce(s, LoadFailed{Message: "Artist Nobody not found"})

	if IsLoading(s) {
		t.Error("loading should be false after failure")
	}
	if Error(s) != "Artist Nobody not found" {
		t.Errorf("error = %q", Error(s))
	}
	if len(s.Fetch.Data.Songs) != 6 || len(PageSongs(s)) != 6 {
		t.Error("prior songs must stay visible after a failure")
	}
}

func TestSelectedArtist(t *testing.T) {
	if _, ok := SelectedArtist(NewState(0)); ok {
		t.Error("empty state should have no selected artist")
	}
	a, ok := SelectedArtist(loaded(t, 15))
	if !ok || a.Name != "Radiohead" {
		t.Errorf("SelectedArtist() = %+v, %v", a, ok)
	}
}

func TestFormattedDuration(t *testing.T) {
	tests := []struct {
		in   Duration
		want string
	}{
		{Duration{}, "0 seconds"},
		{Duration{Hours: 1}, "1 hour"},
		{Duration{Hours: 2, Minutes: 1, Seconds: 30}, "2 hours 1 minute 30 seconds"},
		{Duration{Minutes: 45, Seconds: 1}, "45 minutes 1 second"},
		{Duration{Hours: 3, Seconds: 2}, "3 hours 2 seconds"},
	}

	for _, tt := range tests {
		if got := FormattedDuration(tt.in); got != tt.want {
			t.Errorf("FormattedDuration(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
