package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render sources label where the options of a render came from.
const (
	SourceRequest = "request"
	SourcePreset  = "preset"
	SourceCLI     = "cli"
)

var (
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptlib_renders_total",
		Help: "Prompts rendered, by prompt id and option source.",
	}, []string{"prompt", "source"})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "promptlib_render_duration_seconds",
		Help:    "Time spent rendering a prompt.",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	RenderBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "promptlib_render_bytes",
		Help:    "Size of rendered prompts in bytes.",
		Buckets: prometheus.ExponentialBuckets(1024, 2, 8),
	})

	PresetsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "promptlib_presets_total",
		Help: "Total number of presets in the database.",
	})

	APIErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptlib_api_errors_total",
		Help: "API error responses, by error code.",
	}, []string{"code"})
)
