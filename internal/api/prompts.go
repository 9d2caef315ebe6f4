package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/prompt-library/internal/prompt"
	"github.com/joestump/prompt-library/internal/render"
	"github.com/joestump/prompt-library/internal/store"
)

// promptsAPIHandler lists and renders prompts from the library.
type promptsAPIHandler struct {
	renderer *render.Service
	logger   *slog.Logger
}

func registerPromptRoutes(r chi.Router, renderer *render.Service, logger *slog.Logger) {
	h := &promptsAPIHandler{renderer: renderer, logger: logger}
	r.Get("/prompts", h.List)
	r.Get("/prompts/{id}", h.Get)
	r.Post("/prompts/{id}/render", h.Render)
}

// List returns every prompt in the library.
// GET /api/v1/prompts
//
// @Summary      List prompts
// @Description  Returns the prompts available for rendering, ordered by id
// @Tags         Prompts
// @Produce      json
// @Success      200  {object}  PromptListResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /prompts [get]
func (h *promptsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.renderer.Library().List()
	resp := PromptListResponse{
		Prompts: make([]PromptResponse, 0, len(entries)),
		Default: h.renderer.DefaultPromptID(),
	}
	for _, e := range entries {
		resp.Prompts = append(resp.Prompts, toPromptResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one prompt's metadata.
// GET /api/v1/prompts/{id}
//
// @Summary      Get a prompt
// @Tags         Prompts
// @Produce      json
// @Param        id   path      string  true  "Prompt id"
// @Success      200  {object}  PromptResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /prompts/{id} [get]
func (h *promptsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.renderer.Library().Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "prompt not found", "PROMPT_NOT_FOUND")
		return
	}
	writeJSON(w, http.StatusOK, toPromptResponse(e))
}

// Render renders a prompt with the working directory and allowed tags from
// the body, a preset, or the server defaults.
// POST /api/v1/prompts/{id}/render
//
// @Summary      Render a prompt
// @Description  Omitted fields fall back to the named preset, then to server defaults. Empty values are used as given.
// @Tags         Prompts
// @Accept       json
// @Produce      json
// @Param        id       path      string         true   "Prompt id"
// @Param        request  body      RenderRequest  false  "Render options"
// @Success      200      {object}  RenderResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      413      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      503      {object}  ErrorResponse
// @Security     BearerToken
// @Router       /prompts/{id}/render [post]
func (h *promptsAPIHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeDecodeError(w, err, "invalid configuration")
		return
	}

	renderReq := render.Request{
		PromptID:         chi.URLParam(r, "id"),
		Preset:           req.Preset,
		WorkingDirectory: req.WorkingDirectory,
	}
	if req.AllowedTags != nil {
		renderReq.AllowedTags = *req.AllowedTags
		renderReq.SetAllowedTags = true
	}

	res, err := h.renderer.Render(r.Context(), renderReq)
	switch {
	case err == nil:
	case errors.Is(err, prompt.ErrUnknownPrompt):
		writeError(w, http.StatusNotFound, "prompt not found", "PROMPT_NOT_FOUND")
		return
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "preset not found", "PRESET_NOT_FOUND")
		return
	case errors.Is(err, render.ErrPresetsDisabled):
		writeError(w, http.StatusServiceUnavailable, "presets not configured", "PRESETS_DISABLED")
		return
	default:
		h.logger.Error("api: render prompt", "prompt", renderReq.PromptID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		PromptID:         res.PromptID,
		WorkingDirectory: res.Options.WorkingDirectory,
		AllowedTags:      res.Options.AllowedTags,
		Prompt:           res.Text,
	})
}

func toPromptResponse(e prompt.Entry) PromptResponse {
	return PromptResponse{ID: e.ID, Label: e.Label, Description: e.Description}
}
