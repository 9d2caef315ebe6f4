package api

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Prompt types ---

// PromptResponse describes one prompt in the library.
type PromptResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// PromptListResponse is the response for GET /api/v1/prompts.
type PromptListResponse struct {
	Prompts []PromptResponse `json:"prompts"`
	Default string           `json:"default"`
}

// RenderRequest is the request body for POST /api/v1/prompts/{id}/render.
// Omitted fields fall back to the named preset, then to the server defaults.
type RenderRequest struct {
	Preset           string    `json:"preset,omitempty"`
	WorkingDirectory *string   `json:"working_directory,omitempty"`
	AllowedTags      *[]string `json:"allowed_tags,omitempty"`
}

// RenderResponse carries the rendered prompt and the options used.
type RenderResponse struct {
	PromptID         string   `json:"prompt_id"`
	WorkingDirectory string   `json:"working_directory"`
	AllowedTags      []string `json:"allowed_tags"`
	Prompt           string   `json:"prompt"`
}

// --- Preset types ---

// PresetRequest is the request body for POST /api/v1/presets and
// PUT /api/v1/presets/{name}. Name is ignored on update.
type PresetRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	WorkingDirectory string   `json:"working_directory"`
	AllowedTags      []string `json:"allowed_tags"`
}

// PresetResponse is the JSON representation of a preset.
type PresetResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	WorkingDirectory string    `json:"working_directory"`
	AllowedTags      []string  `json:"allowed_tags"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PresetListResponse is the response for GET /api/v1/presets.
type PresetListResponse struct {
	Presets []PresetResponse `json:"presets"`
}
