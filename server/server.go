package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/fgc-tools/fgc-departures/comments"
	"github.com/fgc-tools/fgc-departures/gtfs"
	"github.com/fgc-tools/fgc-departures/metrics"
	"github.com/fgc-tools/fgc-departures/realtime"
)

// Server serves the departure board API.
type Server struct {
	logger    *zap.Logger
	idx       *gtfs.Index
	feed      *realtime.Feed
	store     *comments.Store
	collector *metrics.Collector

	defaultWindow time.Duration
	maxWindow     time.Duration

	// now is the clock used for date and time defaults.
	now func() time.Time

	httpServer *http.Server
}

// Options carries the server's dependencies. Feed may be nil when no
// realtime URLs are configured; the vehicle endpoints then 404.
type Options struct {
	Logger        *zap.Logger
	Index         *gtfs.Index
	Feed          *realtime.Feed
	Comments      *comments.Store
	Collector     *metrics.Collector
	Port          int
	DefaultWindow time.Duration
	MaxWindow     time.Duration
}

// New assembles the HTTP server and its routes.
func New(opts Options) *Server {
	s := &Server{
		logger:        opts.Logger,
		idx:           opts.Index,
		feed:          opts.Feed,
		store:         opts.Comments,
		collector:     opts.Collector,
		defaultWindow: opts.DefaultWindow,
		maxWindow:     opts.MaxWindow,
		now:           time.Now,
	}

	router := httprouter.New()
	router.HandlerFunc(http.MethodGet, "/api/health", s.handleHealth)
	router.HandlerFunc(http.MethodGet, "/api/stations", s.handleStations)
	router.HandlerFunc(http.MethodGet, "/api/stations/nearest", s.handleNearestStation)
	router.GET("/api/access/:stopID", s.handleAccess)
	router.HandlerFunc(http.MethodGet, "/api/departures", s.handleDepartures)
	router.HandlerFunc(http.MethodGet, "/api/vehicles", s.handleVehicles)
	router.GET("/api/vehicles/:tripID", s.handleVehicle)
	router.HandlerFunc(http.MethodGet, "/api/comments", s.handleGetComments)
	router.HandlerFunc(http.MethodPost, "/api/comments", s.handlePostComment)
	router.Handler(http.MethodGet, "/metrics", opts.Collector.Handler())

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Start begins serving in the background. Listen failures other than a
// clean shutdown are fatal; a departure board that cannot bind its port
// has nothing left to do.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
