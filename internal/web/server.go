// Package web provides the HTTP API server.
package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:3000"

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr            string
	CORSOrigins     []string
	RateLimit       int
	RateLimitWindow time.Duration
	Handlers        *Handlers
	Log             zerolog.Logger
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	log      zerolog.Logger
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: cfg.Handlers,
		log:      cfg.Log,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware(cfg ServerConfig) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	if cfg.RateLimit > 0 {
		s.router.Use(httprate.LimitByIP(cfg.RateLimit, cfg.RateLimitWindow))
	}
}

// setupRoutes configures routes for the API.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Route("/media", func(r chi.Router) {
		r.Get("/movies/recent", h.RecentMovies)
		r.Get("/movies/detail/{id}", h.MovieDetails)
		r.Get("/tv/recent", h.RecentTVShows)
		r.Get("/tv/detail/{id}", h.TVDetails)
		r.Get("/tv/{id}/season/{season}", h.SeasonDetails)
		r.Get("/tv/{id}/season/{season}/episode/{episode}", h.EpisodeDetails)
		r.Get("/person/{id}", h.PersonDetails)
		r.Get("/search", h.Search)
		r.Get("/genres", h.GenreList)
		r.Get("/recommendations", h.Recommendations)
		r.Get("/{type}/{id}/ratings", h.MediaRatings)
	})

	s.router.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/webhook", h.UserWebhook)
		r.Route("/profile/{id}", func(r chi.Router) {
			r.Get("/", h.GetProfile)
			r.Patch("/", h.UpdateProfile)
			r.Delete("/", h.DeleteAccount)
			r.Get("/genres", h.FavoriteGenres)
			r.Put("/genres", h.AddFavoriteGenre)
			r.Delete("/genres", h.RemoveFavoriteGenre)
			r.Get("/platforms", h.UserStreamingPlatforms)
			r.Put("/platforms", h.AddStreamingPlatform)
			r.Delete("/platforms", h.RemoveStreamingPlatform)
		})
	})

	s.router.Route("/interactions/{userId}", func(r chi.Router) {
		r.Post("/", h.CreateInteraction)
		r.Get("/", h.ListInteractions)
		r.Get("/media", h.FindInteraction)
		r.Get("/ratings", h.UserRatings)
		r.Get("/tv/{id}/episodes", h.EpisodeRatings)
		r.Get("/tv/{id}/seasons", h.SeasonRatings)
		r.Patch("/{id}", h.UpdateInteraction)
		r.Delete("/{id}", h.DeleteInteraction)
	})

	s.router.Route("/platforms", func(r chi.Router) {
		r.Get("/", h.ListPlatforms)
		r.Post("/", h.CreatePlatform)
		r.Get("/{id}", h.GetPlatform)
		r.Patch("/{id}", h.UpdatePlatform)
		r.Delete("/{id}", h.DeletePlatform)
		r.Post("/{id}/toggle", h.TogglePlatform)
	})
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.log.Info().Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return err
	}

	s.log.Info().Msg("server stopped")
	return nil
}
