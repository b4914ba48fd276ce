// Package api serves the JSON API used by the host screen, team phones and
// the admin pages. Clients poll GET /api/games/{code} for updates.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/jpcodeman/partygame/internal/auth"
	datasetService "github.com/jpcodeman/partygame/internal/services/dataset"
	gameService "github.com/jpcodeman/partygame/internal/services/game"
	hostService "github.com/jpcodeman/partygame/internal/services/host"
)

const (
	// HostKeyHeader carries the controller's host key
	HostKeyHeader = "X-Host-Key"

	defaultTimeout = 10 * time.Second
)

// Authenticator checks admin credentials
type Authenticator interface {
	Login(password string) (*auth.Token, error)
	Verify(token string) error
}

// Config holds configuration for the API server
type Config struct {
	GameService    gameService.Service
	HostService    hostService.Service
	DatasetService datasetService.Service
	Auth           Authenticator

	// PublicURL is the base of the team join link encoded in QR codes
	PublicURL string

	// EnforceHostKey requires X-Host-Key on finalize and advance
	EnforceHostKey bool

	// AllowedOrigin enables CORS for one browser origin when set
	AllowedOrigin string

	// Timeout bounds each request, defaulting to 10s
	Timeout time.Duration

	// Logger receives access logs. Defaults to the global logger.
	Logger *zerolog.Logger
}

// Server is the HTTP API
type Server struct {
	router         chi.Router
	games          gameService.Service
	hosts          hostService.Service
	datasets       datasetService.Service
	auth           Authenticator
	publicURL      string
	enforceHostKey bool
}

// New builds the router
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}
	if cfg.HostService == nil {
		return nil, ErrNilHostService
	}
	if cfg.DatasetService == nil {
		return nil, ErrNilDatasetService
	}
	if cfg.Auth == nil {
		return nil, ErrNilAuth
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	s := &Server{
		router:         chi.NewRouter(),
		games:          cfg.GameService,
		hosts:          cfg.HostService,
		datasets:       cfg.DatasetService,
		auth:           cfg.Auth,
		publicURL:      strings.TrimRight(cfg.PublicURL, "/"),
		enforceHostKey: cfg.EnforceHostKey,
	}

	r := s.router
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(accessLog)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(timeout))
	r.Use(jsonContentType)
	if cfg.AllowedOrigin != "" {
		r.Use(cors(cfg.AllowedOrigin))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/admin/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/datasets", s.handleListDatasets)
			r.Post("/datasets", s.handleCreateDataset)
			r.Get("/datasets/{id}", s.handleGetDataset)
			r.Get("/datasets/{id}/games", s.handleListGamesByDataset)
		})

		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{code}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Get("/qr", s.handleQRCode)
			r.Post("/teams", s.handleJoinTeam)
			r.Post("/guesses", s.handleSubmitGuess)
			r.With(s.hostKeyGate).Post("/finalize", s.handleFinalizeRound)
			r.With(s.hostKeyGate).Post("/advance", s.handleAdvanceRound)
			r.Post("/host", s.handleAcquireHost)
			r.Delete("/host", s.handleReleaseHost)
			r.With(s.requireAdmin).Post("/host/force-release", s.handleForceReleaseHost)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, apiError{Kind: KindNotFound, Code: "ROUTE_NOT_FOUND", Message: r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Kind: KindBadRequest, Code: "METHOD_NOT_ALLOWED", Message: r.Method})
	})

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the router for tests
func (s *Server) Router() chi.Router {
	return s.router
}
