package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c := New(server.URL, 5*time.Second)
	c.retryWait = 10 * time.Millisecond
	return c
}

func TestCatalogDuration(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/catalog_duration", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["artist"] != "Radiohead" {
			t.Errorf("artist = %q, want Radiohead", body["artist"])
		}
		w.Write([]byte(`{
			"artist_name": "Radiohead",
			"artists": ["Atoms for Peace", "Radiohead"],
			"song_table": [["Before Your Very Eyes", "Airbag"], ["", "Creep"]],
			"duration": {"hours": 12, "minutes": 3, "seconds": 9}
		}`))
	})

	c := newTestClient(t, mux)
	got, err := c.CatalogDuration(context.Background(), "Radiohead")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ArtistName != "Radiohead" {
		t.Errorf("artist_name = %q", got.ArtistName)
	}
	if len(got.Artists) != 2 || got.Artists[1] != "Radiohead" {
		t.Errorf("artists = %v", got.Artists)
	}
	if len(got.SongTable) != 2 || got.SongTable[1][0] != "" {
		t.Errorf("song_table = %v", got.SongTable)
	}
	if got.Duration != (Duration{Hours: 12, Minutes: 3, Seconds: 9}) {
		t.Errorf("duration = %+v", got.Duration)
	}
}

func TestCatalogDurationRejectsMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing artist_name", `{"artists": [], "song_table": [], "duration": {"hours":0,"minutes":0,"seconds":0}}`},
		{"missing artists", `{"artist_name": "X", "song_table": [], "duration": {"hours":0,"minutes":0,"seconds":0}}`},
		{"ragged row", `{"artist_name": "X", "artists": ["X"], "song_table": [["a", "b"]], "duration": {"hours":0,"minutes":0,"seconds":0}}`},
		{"partial duration", `{"artist_name": "X", "artists": ["X"], "song_table": [], "duration": {"hours":1}}`},
		{"wrong type", `{"artist_name": 7}`},
		{"not json", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/api/catalog_duration", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			c := newTestClient(t, mux)
			_, err := c.CatalogDuration(context.Background(), "X")
			if !errors.Is(err, ErrBadPayload) {
				t.Fatalf("expected ErrBadPayload, got %v", err)
			}
			var reqErr *RequestError
			if !errors.As(err, &reqErr) || reqErr.Message == "" {
				t.Errorf("expected RequestError with message, got %#v", err)
			}
		})
	}
}

func TestErrorMessageFromBackend(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/catalog_duration", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Artist Nobody not found"}`))
	})

	c := newTestClient(t, mux)
	_, err := c.CatalogDuration(context.Background(), "Nobody")

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Message != "Artist Nobody not found" {
		t.Errorf("message = %q", reqErr.Message)
	}
	if reqErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", reqErr.StatusCode)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vibe_search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c := newTestClient(t, mux)
	_, err := c.VibeSearch(context.Background(), VibeSearchRequest{Query: "q", Artist: "a", Page: 1})
	if err == nil || err.Error() != "Failed to search for vibes (status 502)" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUnauthorizedWrapsSentinel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vibe_search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Not authenticated"}`))
	})

	c := newTestClient(t, mux)
	_, err := c.VibeSearch(context.Background(), VibeSearchRequest{Query: "q", Artist: "a", Page: 1})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestVibeSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vibe_search", func(w http.ResponseWriter, r *http.Request) {
		var body vibeRequestPayload
		json.NewDecoder(r.Body).Decode(&body)
		if body.Query != "summer" || body.Artist != "X" || body.Page != 2 {
			t.Errorf("request = %+v", body)
		}
		w.Write([]byte(`{
			"query": "summer",
			"relevant_songs": [
				{"title": "Heat", "artist": "X", "year": "July 26, 2024", "url": "https://genius.com/heat"},
				{"title": "Cold", "artist": "X", "year": null}
			],
			"total_pages": 3,
			"current_page": 2,
			"total_results": 52
		}`))
	})

	c := newTestClient(t, mux)
	got, err := c.VibeSearch(context.Background(), VibeSearchRequest{Query: "summer", Artist: "X", Page: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.Songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(got.Songs))
	}
	if got.Songs[0].Year != "July 26, 2024" {
		t.Errorf("year should be passed through raw, got %q", got.Songs[0].Year)
	}
	if got.Songs[1].Year != "" || got.Songs[1].URL != "" {
		t.Errorf("optional fields should be empty, got %+v", got.Songs[1])
	}
	if got.TotalPages != 3 || got.TotalResults != 52 || got.CurrentPage != 2 {
		t.Errorf("pagination = %d/%d/%d", got.TotalPages, got.TotalResults, got.CurrentPage)
	}
}

func TestVibeSearchRejectsSongWithoutTitle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vibe_search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"relevant_songs": [{"artist": "X"}], "total_pages": 1, "total_results": 1}`))
	})

	c := newTestClient(t, mux)
	_, err := c.VibeSearch(context.Background(), VibeSearchRequest{Query: "q", Artist: "X", Page: 1})
	if !errors.Is(err, ErrBadPayload) {
		t.Errorf("expected ErrBadPayload, got %v", err)
	}
}

func TestRetryOn429ResendsBody(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/catalog_duration", func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["artist"] != "X" {
			t.Errorf("call %d: body lost, got %v", calls, body)
		}
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"artist_name": "X", "artists": ["X"], "song_table": [["a"]], "duration": {"hours":0,"minutes":3,"seconds":0}}`))
	})

	c := newTestClient(t, mux)
	if _, err := c.CatalogDuration(context.Background(), "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestAuthStatusAndLoginURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth_status", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil && c.Value == "abc" {
			w.Write([]byte(`{"authenticated": true}`))
			return
		}
		w.Write([]byte(`{"authenticated": false}`))
	})
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"auth_url": "https://accounts.example.com/authorize?x=1"}`))
	})

	c := newTestClient(t, mux)

	ok, err := c.AuthStatus(context.Background())
	if err != nil || ok {
		t.Fatalf("AuthStatus() = %v, %v; want false, nil", ok, err)
	}

	if err := c.SetSessionCookie("session", "abc"); err != nil {
		t.Fatalf("SetSessionCookie: %v", err)
	}
	ok, err = c.AuthStatus(context.Background())
	if err != nil || !ok {
		t.Fatalf("AuthStatus() with cookie = %v, %v; want true, nil", ok, err)
	}

	u, err := c.LoginURL(context.Background())
	if err != nil || u != "https://accounts.example.com/authorize?x=1" {
		t.Errorf("LoginURL() = %q, %v", u, err)
	}
}

func TestTransportFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	_, err := c.AuthStatus(context.Background())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != 0 {
		t.Errorf("status = %d, want 0 for transport failure", reqErr.StatusCode)
	}
}
