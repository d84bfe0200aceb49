package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"vibecatalog/internal/backend"
	"vibecatalog/internal/store"
)

type CatalogRequest struct {
	Artist string `json:"artist"`
}

type PageRequest struct {
	Page int `json:"page"`
}

type ItemsPerPageRequest struct {
	ItemsPerPage int `json:"items_per_page"`
}

type VibeSearchRequest struct {
	Query  string `json:"query"`
	Artist string `json:"artist"`
	Page   int    `json:"page"`
}

type YearRequest struct {
	YearID string `json:"year_id"`
}

// StateResponse is returned by every command endpoint. Error is set when the
// command failed; State always reflects the store after the command.
type StateResponse struct {
	State store.View `json:"state"`
	Error string     `json:"error,omitempty"`
}

type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

type LoginResponse struct {
	AuthURL string `json:"auth_url"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.respond(w, nil)
}

func (s *Server) handleLoadCatalog(w http.ResponseWriter, r *http.Request) {
	var req CatalogRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := s.fetchContext()
	defer cancel()

	err := s.store.LoadCatalogForArtist(ctx, req.Artist)
	if err != nil && !errors.Is(err, store.ErrSuperseded) {
		s.logger.Warn("Catalog lookup for %q failed: %v", req.Artist, err)
	}
	s.respond(w, err)
}

func (s *Server) handleSelectArtist(w http.ResponseWriter, r *http.Request) {
	s.store.SelectArtist(mux.Vars(r)["id"])
	s.respond(w, nil)
}

func (s *Server) handleCatalogPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.store.ChangeCatalogPage(req.Page)
	s.respond(w, nil)
}

func (s *Server) handleItemsPerPage(w http.ResponseWriter, r *http.Request) {
	var req ItemsPerPageRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ItemsPerPage < 1 {
		http.Error(w, "items_per_page must be positive", http.StatusBadRequest)
		return
	}
	s.store.SetItemsPerPage(req.ItemsPerPage)
	s.respond(w, nil)
}

func (s *Server) handleVibeSearch(w http.ResponseWriter, r *http.Request) {
	var req VibeSearchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}

	ctx, cancel := s.fetchContext()
	defer cancel()

	err := s.store.SearchVibe(ctx, req.Query, req.Artist, req.Page)
	if err != nil && !errors.Is(err, store.ErrSuperseded) {
		s.logger.Warn("Vibe search %q failed: %v", req.Query, err)
	}
	s.respond(w, err)
}

func (s *Server) handleVibeYear(w http.ResponseWriter, r *http.Request) {
	var req YearRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.store.FilterByYear(req.YearID)
	s.respond(w, nil)
}

func (s *Server) handleVibePage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := s.fetchContext()
	defer cancel()

	err := s.store.ChangeVibePage(ctx, req.Page)
	if err != nil && !errors.Is(err, store.ErrSuperseded) {
		s.logger.Warn("Vibe page %d failed: %v", req.Page, err)
	}
	s.respond(w, err)
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	ok, err := s.store.AuthStatus(r.Context())
	if err != nil {
		s.logger.Error("Auth status check failed: %v", err)
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, AuthStatusResponse{Authenticated: ok})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	url, err := s.store.LoginURL(r.Context())
	if err != nil {
		s.logger.Error("Login URL lookup failed: %v", err)
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{AuthURL: url})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// respond writes the current state. A superseded response is not an error to
// the caller: the newer request owns the outcome.
func (s *Server) respond(w http.ResponseWriter, err error) {
	resp := StateResponse{State: s.store.Snapshot()}
	if err == nil || errors.Is(err, store.ErrSuperseded) {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Error = err.Error()
	writeJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	var reqErr *backend.RequestError
	switch {
	case errors.Is(err, store.ErrNoArtist), errors.Is(err, store.ErrNoQuery):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &reqErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
