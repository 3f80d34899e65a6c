// ABOUTME: JSON API routes over the catalog, saved content, generation history, and analytics.
// ABOUTME: HTTP concerns live here; behavior is delegated to the domain packages.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/2389-research/contentai/internal/analytics"
	"github.com/2389-research/contentai/internal/catalog"
	"github.com/2389-research/contentai/internal/generator"
	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/models"
	"github.com/2389-research/contentai/internal/similar"
	"github.com/2389-research/contentai/internal/storage"
)

const relatedLimit = 3

// Handler holds the dependencies shared by every route.
type Handler struct {
	Catalog   *catalog.Catalog
	Saved     storage.SavedStore
	History   storage.HistoryStore
	Generator *generator.Generator
	Embedder  similar.Embedder
	Metrics   *Metrics // optional
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ContentDetail is the body of GET /api/content/{id}.
type ContentDetail struct {
	Item    models.ContentItem `json:"item"`
	Saved   bool               `json:"saved"`
	Related []similar.Result   `json:"related"`
}

// Facets lists the distinct values the catalog can be filtered by.
type Facets struct {
	Platforms  []string `json:"platforms"`
	Categories []string `json:"categories"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Kind            string `json:"kind"`
	Prompt          string `json:"prompt"`
	Platform        string `json:"platform"`
	Tone            string `json:"tone"`
	Style           string `json:"style"`
	IncludeHashtags bool   `json:"includeHashtags"`
	IncludeCTA      bool   `json:"includeCta"`
}

// RegisterRoutes sets up the health check and the /api routes.
func RegisterRoutes(h *Handler) RoutesRegistry {
	return func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/content", h.listContent())
			r.Get("/content/facets", h.facets())
			r.Get("/content/{id}", h.getContent())
			r.Get("/saved", h.listSaved())
			r.Post("/saved/{id}/toggle", h.toggleSaved())
			r.Get("/history", h.listHistory())
			r.Delete("/history/{id}", h.removeHistory())
			r.Delete("/history", h.clearHistory())
			r.Post("/generate", h.generate())
			r.Get("/analytics", h.analytics())
		})
	}
}

func (h *Handler) listContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, err := parseContentParams(r)
		if err != nil {
			respondWithDomainError(w, r, "listContent", err)
			return
		}

		items, err := h.Catalog.Search(params)
		if err != nil {
			respondWithDomainError(w, r, "listContent", err)
			return
		}

		logging.Log(ctx).Layer("api").Op("listContent").Str("query", params.Text).
			Int("count", len(items)).Debug("content listed")
		respondWithJSON(w, http.StatusOK, items)
	}
}

func (h *Handler) facets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, Facets{
			Platforms:  h.Catalog.Platforms(),
			Categories: h.Catalog.Categories(),
		})
	}
}

func (h *Handler) getContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		item, err := h.Catalog.Get(id)
		if err != nil {
			respondWithDomainError(w, r, "getContent", err)
			return
		}

		detail := ContentDetail{Item: item, Saved: h.Saved.IsSaved(id), Related: []similar.Result{}}
		if h.Embedder != nil {
			related, err := similar.Related(h.Embedder, h.Catalog.All(), item, relatedLimit)
			if err != nil {
				logging.Log(ctx).Layer("api").Op("getContent").Content(id).Err(err).Warn("related content unavailable")
			} else if related != nil {
				detail.Related = related
			}
		}
		respondWithJSON(w, http.StatusOK, detail)
	}
}

func (h *Handler) listSaved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, nonNil(h.Saved.List()))
	}
}

func (h *Handler) toggleSaved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		item, err := h.Catalog.Get(id)
		if err != nil {
			respondWithDomainError(w, r, "toggleSaved", err)
			return
		}
		result, err := h.Saved.Toggle(item)
		if err != nil {
			respondWithDomainError(w, r, "toggleSaved", err)
			return
		}

		logging.Log(ctx).Layer("api").Op("toggleSaved").Content(id).Bool("saved", result == storage.Saved).
			Info("saved content toggled")
		respondWithJSON(w, http.StatusOK, map[string]any{
			"id":    id,
			"saved": result == storage.Saved,
		})
	}
}

func (h *Handler) listHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, nonNil(h.History.List()))
	}
}

func (h *Handler) removeHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := h.History.Remove(id); err != nil {
			respondWithDomainError(w, r, "removeHistory", err)
			return
		}
		logging.Log(r.Context()).Layer("api").Op("removeHistory").Content(id).Info("history entry removed")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) clearHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.History.Clear(); err != nil {
			respondWithDomainError(w, r, "clearHistory", err)
			return
		}
		logging.Log(r.Context()).Layer("api").Op("clearHistory").Info("history cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logging.Log(ctx).Layer("api").Op("generate").Err(err).Warn("failed to decode request body")
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var (
			draft models.GeneratedContent
			err   error
		)
		switch strings.ToLower(req.Kind) {
		case "", string(models.KindText):
			draft, err = h.Generator.GenerateContent(ctx, generator.Request{
				Prompt:          req.Prompt,
				Platform:        req.Platform,
				Tone:            req.Tone,
				IncludeHashtags: req.IncludeHashtags,
				IncludeCTA:      req.IncludeCTA,
			})
			h.Metrics.ObserveGeneration(string(models.KindText), err)
		case string(models.KindImage):
			draft, err = h.Generator.GenerateImage(ctx, generator.ImageRequest{Prompt: req.Prompt, Style: req.Style})
			h.Metrics.ObserveGeneration(string(models.KindImage), err)
		default:
			err = &models.ValidationError{Errors: []string{"kind must be text or image"}}
		}
		if err != nil {
			respondWithDomainError(w, r, "generate", err)
			return
		}

		if err := h.History.Add(draft); err != nil {
			logging.Log(ctx).Layer("api").Op("generate").Content(draft.ID).Err(err).Warn("failed to record generation history")
		}
		logging.Log(ctx).Layer("api").Op("generate").Content(draft.ID).Str("kind", string(draft.Kind)).
			Info("content generated")
		respondWithJSON(w, http.StatusCreated, draft)
	}
}

func (h *Handler) analytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, analytics.Compute(h.Catalog.All()))
	}
}

func parseContentParams(r *http.Request) (catalog.Params, error) {
	q := r.URL.Query()
	params := catalog.Params{
		Text:       q.Get("q"),
		Platforms:  q["platform"],
		Categories: q["category"],
		Sort:       q.Get("sort"),
	}

	var errs []string
	parseScore := func(name string) *int {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, name+" must be an integer")
			return nil
		}
		return &v
	}
	params.MinScore = parseScore("min_score")
	params.MaxScore = parseScore("max_score")
	if len(errs) > 0 {
		return params, &models.ValidationError{Errors: errs}
	}
	return params, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func respondWithDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logging.Log(r.Context()).Layer("api").Op(op).Err(err)

	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.Warn("validation error")
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		log.Warn("not found")
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		log.Error("request failed")
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}
