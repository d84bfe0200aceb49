package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"vibecatalog/internal/logger"
	"vibecatalog/internal/store"
)

type Server struct {
	ctx            context.Context
	store          *store.Store
	requestTimeout time.Duration
	logger         *logger.Logger
}

// NewServer exposes st over HTTP. Remote calls started by a request are bound
// to ctx rather than the request so that a client disconnect does not turn an
// in-flight fetch into a failure.
func NewServer(ctx context.Context, st *store.Store, requestTimeout time.Duration, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		ctx:            ctx,
		store:          st,
		requestTimeout: requestTimeout,
		logger:         log,
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)

	api.HandleFunc("/catalog", s.handleLoadCatalog).Methods(http.MethodPost)
	api.HandleFunc("/catalog/artists/{id}/select", s.handleSelectArtist).Methods(http.MethodPost)
	api.HandleFunc("/catalog/page", s.handleCatalogPage).Methods(http.MethodPost)
	api.HandleFunc("/catalog/items-per-page", s.handleItemsPerPage).Methods(http.MethodPost)

	api.HandleFunc("/vibe/search", s.handleVibeSearch).Methods(http.MethodPost)
	api.HandleFunc("/vibe/year", s.handleVibeYear).Methods(http.MethodPost)
	api.HandleFunc("/vibe/page", s.handleVibePage).Methods(http.MethodPost)

	api.HandleFunc("/auth/status", s.handleAuthStatus).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.handleWebSocket)

	r.Use(s.loggingMiddleware)
	return r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

// fetchContext bounds a remote call started on behalf of a request.
func (s *Server) fetchContext() (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(s.ctx)
	}
	return context.WithTimeout(s.ctx, s.requestTimeout)
}

// ListenAndServe serves the API on addr until the server context is
// cancelled, then drains open requests.
func (s *Server) ListenAndServe(addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.requestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web server on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-s.ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
