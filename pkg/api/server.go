// Package api serves the layout pipeline and chart storage over HTTP.
//
// Routes:
//
//	GET    /healthz            liveness and build info
//	POST   /v1/layout          lay out a chart without storing it
//	GET    /v1/charts          list stored charts
//	POST   /v1/charts          lay out and store a chart
//	GET    /v1/charts/{id}     fetch a stored chart with its layout
//	DELETE /v1/charts/{id}     delete a stored chart
//
// Errors are JSON objects {"code": ..., "message": ...} whose HTTP status is
// derived from the error code.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dropline/pkg/pedigree/layout"
	"github.com/matzehuels/dropline/pkg/pipeline"
	"github.com/matzehuels/dropline/pkg/storage"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 16 << 20

// RequestTimeout bounds the time spent on one request.
const RequestTimeout = 60 * time.Second

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Runner *pipeline.Runner
	Store  storage.Store
	Logger *log.Logger

	// Layout holds the parameters used when a request leaves them unset.
	Layout layout.Options
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, store storage.Store, logger *log.Logger, defaults layout.Options) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	return &Server{
		Runner: runner,
		Store:  store,
		Logger: logger,
		Layout: defaults.WithDefaults(),
	}
}

// Routes returns the HTTP handler for all API routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.handleListCharts)
			r.Post("/", s.handleCreateChart)
			r.Get("/{id}", s.handleGetChart)
			r.Delete("/{id}", s.handleDeleteChart)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.Logger, notFoundRoute(r))
	})
	return r
}
