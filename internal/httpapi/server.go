// Package httpapi serves the read-only results view over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/godilite/presentation-scoring/internal/service"
)

const requestTimeout = 10 * time.Second

// ResultsService is the read side of the evaluation service.
type ResultsService interface {
	Rubric() service.RubricView
	Evaluations(ctx context.Context) ([]scoring.Evaluation, error)
	Results(ctx context.Context) (scoring.Results, error)
}

type Server struct {
	router  *chi.Mux
	results ResultsService
	metrics http.Handler
	logger  *zap.Logger
}

// NewServer builds the router. metrics may be nil, in which case /metrics is
// not mounted.
func NewServer(results ResultsService, metrics http.Handler, logger *zap.Logger) *Server {
	if results == nil {
		panic("nil ResultsService provided to NewServer")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		results: results,
		metrics: metrics,
		logger:  logger.Named("http-api"),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rubric", s.handleRubric)
		r.Get("/evaluations", s.handleEvaluations)
		r.Get("/results", s.handleResults)
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("remote_addr", r.RemoteAddr))
		}()

		next.ServeHTTP(ww, r)
	})
}
