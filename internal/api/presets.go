package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/prompt-library/internal/metrics"
	"github.com/joestump/prompt-library/internal/store"
)

// presetsAPIHandler provides CRUD for stored presets.
type presetsAPIHandler struct {
	presets store.PresetStoreIface
	logger  *slog.Logger
}

func registerPresetRoutes(r chi.Router, presets store.PresetStoreIface, logger *slog.Logger) {
	h := &presetsAPIHandler{presets: presets, logger: logger}
	r.Group(func(r chi.Router) {
		r.Use(h.requireStore)
		r.Get("/presets", h.List)
		r.Post("/presets", h.Create)
		r.Get("/presets/{name}", h.Get)
		r.Put("/presets/{name}", h.Update)
		r.Delete("/presets/{name}", h.Delete)
	})
}

// requireStore answers 503 when no database is configured.
func (h *presetsAPIHandler) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.presets == nil {
			writeError(w, http.StatusServiceUnavailable, "presets not configured", "PRESETS_DISABLED")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// List returns all presets ordered by name.
// GET /api/v1/presets
//
// @Summary      List presets
// @Tags         Presets
// @Produce      json
// @Success      200  {object}  PresetListResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /presets [get]
func (h *presetsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	presets, err := h.presets.List(r.Context())
	if err != nil {
		h.internalError(w, "list presets", err)
		return
	}
	resp := PresetListResponse{Presets: make([]PresetResponse, 0, len(presets))}
	for _, p := range presets {
		resp.Presets = append(resp.Presets, toPresetResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create stores a new preset.
// POST /api/v1/presets
//
// @Summary      Create a preset
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        body  body      PresetRequest  true  "Preset to create"
// @Success      201   {object}  PresetResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      413   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /presets [post]
func (h *presetsAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePresetRequest(w, r)
	if !ok {
		return
	}

	p, err := h.presets.Create(r.Context(), toPresetInput(req))
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNameInvalid), errors.Is(err, store.ErrNameReserved):
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	case errors.Is(err, store.ErrNameTaken):
		writeError(w, http.StatusConflict, "preset name is already taken", "NAME_TAKEN")
		return
	default:
		h.internalError(w, "create preset", err)
		return
	}

	h.refreshCount(r.Context())
	writeJSON(w, http.StatusCreated, toPresetResponse(p))
}

// Get returns one preset.
// GET /api/v1/presets/{name}
//
// @Summary      Get a preset
// @Tags         Presets
// @Produce      json
// @Param        name  path      string  true  "Preset name"
// @Success      200   {object}  PresetResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /presets/{name} [get]
func (h *presetsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.presets.GetByName(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preset not found", "PRESET_NOT_FOUND")
		return
	}
	if err != nil {
		h.internalError(w, "get preset", err)
		return
	}
	writeJSON(w, http.StatusOK, toPresetResponse(p))
}

// Update replaces a preset's description, working directory and tags.
// PUT /api/v1/presets/{name}
//
// @Summary      Update a preset
// @Description  The preset name is immutable; a name in the body is ignored.
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        name  path      string         true  "Preset name"
// @Param        body  body      PresetRequest  true  "New values"
// @Success      200   {object}  PresetResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      413   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /presets/{name} [put]
func (h *presetsAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePresetRequest(w, r)
	if !ok {
		return
	}

	p, err := h.presets.Update(r.Context(), chi.URLParam(r, "name"), toPresetInput(req))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preset not found", "PRESET_NOT_FOUND")
		return
	}
	if err != nil {
		h.internalError(w, "update preset", err)
		return
	}
	writeJSON(w, http.StatusOK, toPresetResponse(p))
}

// Delete removes a preset.
// DELETE /api/v1/presets/{name}
//
// @Summary      Delete a preset
// @Tags         Presets
// @Param        name  path  string  true  "Preset name"
// @Success      204
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /presets/{name} [delete]
func (h *presetsAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.presets.Delete(r.Context(), chi.URLParam(r, "name"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "preset not found", "PRESET_NOT_FOUND")
		return
	}
	if err != nil {
		h.internalError(w, "delete preset", err)
		return
	}
	h.refreshCount(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *presetsAPIHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("api: "+op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
}

func (h *presetsAPIHandler) refreshCount(ctx context.Context) {
	n, err := h.presets.Count(ctx)
	if err != nil {
		h.logger.Warn("api: count presets", "error", err)
		return
	}
	metrics.PresetsTotal.Set(float64(n))
}

func decodePresetRequest(w http.ResponseWriter, r *http.Request) (PresetRequest, bool) {
	var req PresetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err, "invalid request body")
		return req, false
	}
	return req, true
}

func toPresetInput(req PresetRequest) store.PresetInput {
	return store.PresetInput{
		Name:             req.Name,
		Description:      req.Description,
		WorkingDirectory: req.WorkingDirectory,
		AllowedTags:      req.AllowedTags,
	}
}

func toPresetResponse(p *store.Preset) PresetResponse {
	tags := p.AllowedTags
	if tags == nil {
		tags = []string{}
	}
	return PresetResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		WorkingDirectory: p.WorkingDirectory,
		AllowedTags:      tags,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
