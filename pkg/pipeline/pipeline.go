// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP API.
//
// The pipeline consists of two stages:
//
//  1. Layout: validate the request and compute the chart (see [chart.Build])
//  2. Export: serialize the chart into each requested format
//
// Both stages are cached. Charts are keyed by their inputs; artifacts by the
// hash of the chart they were exported from and their format.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scale:   100,
//	    Groups:  []chart.Group{{Label: "A", NumSeats: 12}},
//	    Formats: []string{"json", "xlsx"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	xlsx := result.Artifacts["xlsx"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hemicycle/pkg/cache"
	"github.com/matzehuels/hemicycle/pkg/chart"
	"github.com/matzehuels/hemicycle/pkg/export"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Scale  float64       `json:"scale"`
	Groups []chart.Group `json:"groups"`

	// Formats lists the exports to produce. Defaults to json.
	Formats []string `json:"formats,omitempty"`

	// MaxRows bounds the row planner. Defaults to chart.DefaultMaxRows.
	MaxRows int `json:"max_rows,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	formats   []export.Format
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the computed seat assignment.
	Chart chart.Chart

	// ChartHash is the content hash of the chart's JSON encoding.
	ChartHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TotalSeats  int
	Rows        int
	Groups      int
	ComputeTime time.Duration
	ExportTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ChartHit  bool // Whether the chart came from cache
	ExportHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in unset optional fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(export.FormatJSON)}
	}
	if o.MaxRows <= 0 {
		o.MaxRows = chart.DefaultMaxRows
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks the request.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := chart.Validate(o.Scale, o.Groups); err != nil {
		return err
	}

	o.formats = nil
	for _, f := range o.Formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			return err
		}
		o.formats = append(o.formats, format)
	}
	o.validated = true
	return nil
}

// ChartKeyOpts returns cache key options for the chart.
func (o *Options) ChartKeyOpts() cache.ChartKeyOpts {
	opts := cache.ChartKeyOpts{
		Scale:   o.Scale,
		Labels:  make([]string, len(o.Groups)),
		Seats:   make([]int, len(o.Groups)),
		MaxRows: o.MaxRows,
	}
	for i, g := range o.Groups {
		opts.Labels[i] = g.Label
		opts.Seats[i] = g.NumSeats
	}
	return opts
}

// ArtifactKeyOpts returns cache key options for one export format. The
// JSON document records the requested scale, which charts of different
// scales can share (an empty chart has radius 0 at every scale), so the
// scale is part of its key.
func (o *Options) ArtifactKeyOpts(format export.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(format)}
	if format == export.FormatJSON {
		opts.Scale = o.Scale
	}
	return opts
}
