package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/stategraph/pkg/errors"
	"github.com/matzehuels/stategraph/pkg/generator"
	"github.com/matzehuels/stategraph/pkg/index"
	"github.com/matzehuels/stategraph/pkg/wire"
	"github.com/matzehuels/stategraph/pkg/workflow"
)

func (s *Server) handleEntitySearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if err := errors.ValidateSearchQuery(q); err != nil {
		s.writeError(w, err)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	results := s.entities.Search(q, limit, r.URL.Query()["type"]...)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleEntityLookup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "name parameter is required"))
		return
	}

	e, err := s.entities.Lookup(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleEntityByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "entity id must be an integer"))
		return
	}

	e, err := s.entities.ByID(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

// dungeonSummary is the list-view shape of a dungeon, without the full
// enemy roster.
type dungeonSummary struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Difficulty string `json:"difficulty,omitempty"`
	PortalID   int    `json:"portal_id,omitempty"`
	Boss       string `json:"boss,omitempty"`
	EnemyCount int    `json:"enemyCount"`
}

func (s *Server) handleDungeonList(w http.ResponseWriter, r *http.Request) {
	dungeons := s.dungeons.Dungeons()
	summaries := make([]dungeonSummary, len(dungeons))
	for i, d := range dungeons {
		summaries[i] = dungeonSummary{
			Slug:       d.Slug,
			Name:       d.Name,
			Difficulty: d.Difficulty,
			PortalID:   d.PortalID,
			EnemyCount: len(d.Enemies),
		}
		if d.Boss != nil {
			summaries[i].Boss = d.Boss.Name
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"dungeons": summaries,
		"count":    len(summaries),
	})
}

func (s *Server) handleDungeon(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := errors.ValidateDungeonSlug(slug); err != nil {
		s.writeError(w, err)
		return
	}

	d, err := s.dungeons.Dungeon(slug)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

// generateResponse wraps a generated workflow document with its counts.
type generateResponse struct {
	State     json.RawMessage `json:"state"`
	NodeCount int             `json:"nodeCount"`
	LinkCount int             `json:"linkCount"`
}

func (s *Server) handleGenerateRealm(w http.ResponseWriter, r *http.Request) {
	var cfg generator.RealmFarmerConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body"))
		return
	}

	g, err := generator.GenerateRealmFarmer(&cfg, s.entities)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeGenerated(w, cfg.Name, g)
}

func (s *Server) handleGenerateDungeon(w http.ResponseWriter, r *http.Request) {
	var cfg generator.DungeonFarmerConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body"))
		return
	}

	g, err := generator.GenerateDungeonFarmer(&cfg, s.dungeons, s.entities)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeGenerated(w, cfg.StateName(), g)
}

func (s *Server) writeGenerated(w http.ResponseWriter, name string, g *workflow.Graph) {
	doc, err := wire.Marshal(g)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serializing workflow"))
		return
	}

	s.logger.Info("generated workflow", "name", name, "nodes", g.NodeCount(), "links", g.LinkCount())
	s.writeJSON(w, http.StatusOK, generateResponse{
		State:     doc,
		NodeCount: g.NodeCount(),
		LinkCount: g.LinkCount(),
	})
}

// exportResponse identifies a stored export.
type exportResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// handleExport stores a posted workflow document under a fresh id. The
// document must parse as a valid workflow; arbitrary JSON is rejected.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	g, err := wire.Read(r.Body)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding workflow document"))
		return
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "creating export directory"))
		return
	}

	id := uuid.NewString()
	filename := id + ".json"
	if err := wire.WriteFile(g, filepath.Join(s.exportDir, filename)); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "writing export"))
		return
	}

	s.logger.Info("stored export", "id", id, "nodes", g.NodeCount())
	s.writeJSON(w, http.StatusCreated, exportResponse{ID: id, Filename: filename})
}

// handleExportGet returns a previously stored export verbatim.
func (s *Server) handleExportGet(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := errors.ValidateExportFilename(filename); err != nil {
		s.writeError(w, err)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.exportDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			s.writeError(w, errors.New(errors.ErrCodeNotFound, "no export named %q", filename))
			return
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "reading export"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("writing export response", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

// errorBody is the wire shape of an API error.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = errors.UserMessage(err)

	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.writeJSON(w, status, body)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeEntityNotFound, errors.ErrCodeDungeonNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ensure index types keep satisfying generator.Resolver.
var _ generator.Resolver = (*index.EntityIndex)(nil)
