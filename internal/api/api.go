// Package api implements the HTTP API backing the workflow editor:
// entity and dungeon lookups against the reference data, workflow
// generation from JSON configs, and document export.
//
// All responses are JSON. Errors carry the structured code from
// pkg/errors so clients can branch without parsing messages:
//
//	{"error": {"code": "ENTITY_NOT_FOUND", "message": "no entity named \"x\""}}
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stategraph/pkg/index"
)

// Server holds the reference indexes and settings shared by all
// handlers. Indexes are read-only after construction, so handlers need
// no locking.
type Server struct {
	entities  *index.EntityIndex
	dungeons  *index.DungeonIndex
	logger    *log.Logger
	exportDir string
}

// New creates a Server. exportDir receives documents posted to
// /api/export; it is created on first use.
func New(entities *index.EntityIndex, dungeons *index.DungeonIndex, logger *log.Logger, exportDir string) *Server {
	return &Server{
		entities:  entities,
		dungeons:  dungeons,
		logger:    logger,
		exportDir: exportDir,
	}
}

// Router builds the API route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/entities/search", s.handleEntitySearch)
		r.Get("/entities/lookup", s.handleEntityLookup)
		r.Get("/entities/{id}", s.handleEntityByID)
		r.Get("/dungeons", s.handleDungeonList)
		r.Get("/dungeons/{slug}", s.handleDungeon)
		r.Post("/generate/realm", s.handleGenerateRealm)
		r.Post("/generate/dungeon", s.handleGenerateDungeon)
		r.Post("/export", s.handleExport)
		r.Get("/export/{filename}", s.handleExportGet)
	})

	return r
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
