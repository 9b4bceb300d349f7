// Package server wires the HTTP surface: Huma API, metrics, and services.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rs/zerolog"

	"github.com/geovizlabs/geoviz/internal/api"
	"github.com/geovizlabs/geoviz/internal/logger"
	"github.com/geovizlabs/geoviz/internal/observability"
	"github.com/geovizlabs/geoviz/internal/service"
	"github.com/geovizlabs/geoviz/internal/style"
	"github.com/geovizlabs/geoviz/internal/warehouse"
)

// Config holds the server configuration.
type Config struct {
	Host     string
	Port     string
	DataDir  string
	LogLevel string
	Console  bool
}

// Server is the geoviz HTTP server.
type Server struct {
	config   Config
	mux      *http.ServeMux
	humaAPI  huma.API
	db       *sql.DB
	services *api.Services
	log      zerolog.Logger
}

// New creates a new geoviz server.
func New(cfg Config) *Server {
	log := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.Console,
		Component: "server",
	}, nil)

	mux := http.NewServeMux()

	// Create Huma API with humago (pure stdlib) adapter
	humaConfig := huma.DefaultConfig("geoviz API", "1.0.0")
	humaConfig.Info.Description = "Geospatial visualization API: SQL queries against the warehouse rendered as styled map features."
	humaConfig.Servers = []*huma.Server{
		{URL: fmt.Sprintf("http://%s:%s", cfg.Host, cfg.Port), Description: "Local server"},
	}
	// Disable $schema property in responses (cleaner JSON)
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}
	humaConfig.Transformers = append(humaConfig.Transformers, api.LinkTransformer(), api.PaginationTransformer())

	humaAPI := humago.New(mux, humaConfig)

	s := &Server{
		config:  cfg,
		mux:     mux,
		humaAPI: humaAPI,
		log:     log,
	}

	// Warehouse connection
	conn, err := warehouse.Open(warehouse.Config{
		DataDir: cfg.DataDir,
		DBName:  "geoviz",
	})
	if err != nil {
		log.Warn().Err(err).Msg("warehouse unavailable, queries will fail")
	} else {
		s.db = conn
	}

	client := warehouse.NewClient(s.db, log)
	s.services = &api.Services{
		Viz:       service.NewVizService(cfg.DataDir),
		Share:     service.NewShareService(cfg.DataDir),
		Dataset:   service.NewDatasetService(cfg.DataDir, client),
		Warehouse: client,
		Styler:    style.NewStyler(log),
		Log:       log,
	}

	observability.ExposeBuildInfo("0.1.0")
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(sw, r)
	observability.ObserveHTTP(r.Method, r.URL.Path, sw.status)
	s.log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", sw.status).
		Dur("elapsed", time.Since(start)).
		Msg("request")
}

// statusWriter records the response status for logging and metrics. Flush
// is forwarded so SSE streaming keeps working through the wrapper.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// OpenAPI returns the generated OpenAPI spec.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.humaAPI.OpenAPI()
}

// Close closes server resources.
func (s *Server) Close() error {
	return warehouse.Close()
}

func (s *Server) routes() {
	handler := api.NewAPIHandler(s.services)
	handler.RegisterHealth(s.humaAPI)
	handler.RegisterViz(s.humaAPI)
	handler.RegisterShares(s.humaAPI)
	handler.RegisterDatasets(s.humaAPI)

	api.NewRenderHandler(s.services).RegisterRoutes(s.humaAPI)
	api.NewDBHandler(s.services.Warehouse).RegisterRoutes(s.humaAPI)
	api.NewInfoHandler(s.config.DataDir, s.db != nil).RegisterRoutes(s.humaAPI)
	api.NewEventHandler(s.services).RegisterRoutes(s.humaAPI)

	s.mux.Handle("/metrics", observability.Handler())
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service": "geoviz",
		"status":  "running",
	})
}
