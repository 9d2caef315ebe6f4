// Package render resolves prompt options from defaults, presets and explicit
// overrides, renders the selected prompt and records metrics. The CLI and the
// HTTP API both go through Service.
package render

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/joestump/prompt-library/internal/metrics"
	"github.com/joestump/prompt-library/internal/prompt"
	"github.com/joestump/prompt-library/internal/store"
)

// ErrPresetsDisabled is returned when a preset is requested but no database is configured.
var ErrPresetsDisabled = errors.New("presets are not configured")

// PresetGetter is the slice of the preset store the renderer needs.
type PresetGetter interface {
	GetByName(ctx context.Context, name string) (*store.Preset, error)
}

// Request selects a prompt and the values to render it with. Nil override
// fields fall back to the preset, then to the service defaults; non-nil
// fields are used as given, including empty values.
type Request struct {
	PromptID         string
	Preset           string
	WorkingDirectory *string
	AllowedTags      []string
	// SetAllowedTags distinguishes an explicit empty tag list from an omitted one.
	SetAllowedTags bool
	// Source labels the render in metrics; see metrics.Source*.
	Source string
}

// Result is a rendered prompt and the inputs that produced it.
type Result struct {
	PromptID string
	Options  prompt.Options
	Text     string
}

// Service renders prompts from a Library.
type Service struct {
	library         *prompt.Library
	presets         PresetGetter
	defaults        prompt.Options
	defaultPromptID string
	logger          *slog.Logger
}

// NewService creates a Service. presets may be nil when no database is
// configured.
func NewService(lib *prompt.Library, presets PresetGetter, defaults prompt.Options, defaultPromptID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		library:         lib,
		presets:         presets,
		defaults:        defaults,
		defaultPromptID: defaultPromptID,
		logger:          logger,
	}
}

// Library returns the prompt library the service renders from.
func (s *Service) Library() *prompt.Library {
	return s.library
}

// DefaultPromptID returns the prompt rendered when a request names none.
func (s *Service) DefaultPromptID() string {
	return s.defaultPromptID
}

// Resolve computes the options a request renders with.
func (s *Service) Resolve(ctx context.Context, req Request) (prompt.Options, error) {
	opts := prompt.Options{
		WorkingDirectory: s.defaults.WorkingDirectory,
		AllowedTags:      s.defaults.AllowedTags,
	}

	if req.Preset != "" {
		if s.presets == nil {
			return prompt.Options{}, ErrPresetsDisabled
		}
		p, err := s.presets.GetByName(ctx, req.Preset)
		if err != nil {
			return prompt.Options{}, err
		}
		opts = p.Options()
	}

	if req.WorkingDirectory != nil {
		opts.WorkingDirectory = *req.WorkingDirectory
	}
	if req.SetAllowedTags {
		opts.AllowedTags = req.AllowedTags
	}
	opts.AllowedTags = append([]string{}, opts.AllowedTags...)
	return opts, nil
}

// Render resolves options for req and renders the selected prompt.
func (s *Service) Render(ctx context.Context, req Request) (*Result, error) {
	id := req.PromptID
	if id == "" {
		id = s.defaultPromptID
	}
	entry, err := s.library.Get(id)
	if err != nil {
		return nil, err
	}

	opts, err := s.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text := entry.Render(opts)
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	metrics.RenderBytes.Observe(float64(len(text)))
	metrics.RendersTotal.WithLabelValues(id, sourceLabel(req)).Inc()

	s.logger.Debug("prompt rendered",
		"prompt", id,
		"preset", req.Preset,
		"working_directory", opts.WorkingDirectory,
		"allowed_tags", len(opts.AllowedTags),
		"bytes", len(text))

	return &Result{PromptID: id, Options: opts, Text: text}, nil
}

func sourceLabel(req Request) string {
	if req.Source != "" {
		return req.Source
	}
	if req.Preset != "" {
		return metrics.SourcePreset
	}
	return metrics.SourceRequest
}
