// Package server exposes the planning and session services over HTTP.
package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alexanderramin/wander/internal/auth"
	"github.com/alexanderramin/wander/internal/config"
	"github.com/alexanderramin/wander/internal/service"
)

// Services are the use cases the API serves.
type Services struct {
	Plan       service.PlanService
	Locations  service.LocationService
	Profiles   service.ProfileService
	Sessions   service.SessionService
	Excursions service.ExcursionService
}

// HTTPRecorder receives one observation per served request.
type HTTPRecorder interface {
	ObserveHTTP(route, method string, status int, d time.Duration)
}

// Options tunes the router. Zero values disable the matching feature.
type Options struct {
	Auth           auth.Config
	CorsOrigins    []string
	RequestTimeout time.Duration
	Metrics        http.Handler
	Recorder       HTTPRecorder
	Logger         *slog.Logger
	WebSocket      WebSocketConfig
}

// NewRouter builds the chi router for every route.
func NewRouter(svcs Services, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.WebSocket == (WebSocketConfig{}) {
		opts.WebSocket = DefaultWebSocketConfig()
	}
	h := &handlers{svcs: svcs, logger: opts.Logger, ws: opts.WebSocket}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(opts.Logger, opts.Recorder))
	router.Use(middleware.Recoverer)

	origins := opts.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" is not allowed on "+r.URL.Path)
	})

	authn := auth.Middleware(opts.Auth, func(w http.ResponseWriter, status int, err error) {
		writeError(w, status, "UNAUTHORIZED", err.Error())
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/v1", func(r chi.Router) {
			r.Use(authn)
			if opts.RequestTimeout > 0 {
				r.Use(middleware.Timeout(opts.RequestTimeout))
			}

			r.Post("/excursions/plan", h.plan)
			r.Get("/excursions", h.listExcursions)
			r.Get("/excursions/favorites", h.listFavorites)
			r.Put("/excursions/{id}/favorite", h.setFavorite(true))
			r.Delete("/excursions/{id}/favorite", h.setFavorite(false))

			r.Get("/locations", h.listLocations)
			r.Post("/locations", h.addLocation)

			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.updateProfile)

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", h.chooseExcursion)
				r.Get("/{id}", h.getSession)
				r.Post("/{id}/start", h.startSession)
				r.Post("/{id}/guide", h.guideSession)
				r.Get("/{id}/reflect", h.reflectSession)
				r.Post("/{id}/reflect", h.submitReflection)
			})
		})
	})

	// Live guidance runs without the request timeout.
	router.With(authn).Get("/ws/sessions/{id}/guide", h.guideSocket)

	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	return router
}

// Server wraps an http.Server around the router.
type Server struct {
	server *http.Server
}

func NewServer(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{server: &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}}
}

func (s *Server) Addr() string { return s.server.Addr }

// ListenAndServe blocks until the server stops. A graceful shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
