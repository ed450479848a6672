// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the doctor directory as a JSON HTTP API. Every
// request carries the page's query string; the server builds a fresh
// directory engine seeded from it, so no session state lives on the server.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/pdiddy/doctor-directory/internal/directory"
	"github.com/pdiddy/doctor-directory/internal/urlstate"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

// RecordStore is the read-only record store shared by all requests.
type RecordStore interface {
	Records() []types.Doctor
	Loaded() bool
}

// Server routes directory requests.
type Server struct {
	echo      *echo.Echo
	store     RecordStore
	policy    types.URLPolicy
	logger    *slog.Logger
	rateLimit float64
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit caps requests per second per client IP. Values <= 0
// disable limiting.
func WithRateLimit(perSecond float64) Option {
	return func(s *Server) { s.rateLimit = perSecond }
}

// New creates a Server over store. A nil logger uses slog.Default().
func New(store RecordStore, policy types.URLPolicy, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		echo:   echo.New(),
		store:  store,
		policy: policy,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			)
			return nil
		},
	}))
	if s.rateLimit > 0 {
		s.echo.Use(s.rateLimiter())
	}

	s.echo.GET("/health", s.handleHealth)
	api := s.echo.Group("/api")
	api.GET("/doctors", s.handleDoctors)
	api.GET("/suggestions", s.handleSuggestions)
	api.GET("/specialties", s.handleSpecialties)
	api.GET("/controls", s.handleControls)
	api.POST("/events", s.handleEvent)
	return s
}

func (s *Server) rateLimiter() echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.rateLimit),
		Burst:     int(math.Ceil(s.rateLimit)),
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "could not identify client"})
		},
		DenyHandler: func(c echo.Context, id string, err error) error {
			s.logger.Debug("rate limited", "client", id)
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
		},
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Loaded  bool   `json:"loaded"`
	Records int    `json:"records"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Loaded:  s.store.Loaded(),
		Records: len(s.store.Records()),
	})
}

func (s *Server) engine(c echo.Context) *directory.Engine {
	q := urlstate.NewQuery(c.QueryParams())
	return directory.New(s.store, q,
		directory.WithPolicy(s.policy),
		directory.WithLogger(s.logger),
	)
}

func (s *Server) handleDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine(c).View())
}

type suggestionsResponse struct {
	Query       string   `json:"q"`
	Suggestions []string `json:"suggestions"`
}

func (s *Server) handleSuggestions(c echo.Context) error {
	q := c.QueryParam("q")
	return c.JSON(http.StatusOK, suggestionsResponse{
		Query:       q,
		Suggestions: directory.Names(directory.Suggest(s.store.Records(), q)),
	})
}

type specialtyResponse struct {
	Name      string `json:"name"`
	ControlID string `json:"control_id"`
}

func (s *Server) handleSpecialties(c echo.Context) error {
	out := make([]specialtyResponse, len(types.Specialties))
	for i, name := range types.Specialties {
		out[i] = specialtyResponse{Name: name, ControlID: types.SpecialtyControlID(name)}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleControls(c echo.Context) error {
	state := urlstate.Read(urlstate.NewQuery(c.QueryParams()))
	return c.JSON(http.StatusOK, types.Controls(state))
}

func (s *Server) handleEvent(c echo.Context) error {
	var ev directory.Event
	if err := json.NewDecoder(c.Request().Body).Decode(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decoding event: %v", err)})
	}

	e := s.engine(c)
	if err := e.Apply(ev); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, e.View())
}
