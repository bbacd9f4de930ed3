package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hemicycle/pkg/cache"
	"github.com/matzehuels/hemicycle/pkg/chart"
	herrors "github.com/matzehuels/hemicycle/pkg/errors"
	"github.com/matzehuels/hemicycle/pkg/export"
	"github.com/matzehuels/hemicycle/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeChart    = "chart"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the cache lifetime of charts and artifacts when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ChartEntry is a computed chart together with its row count. It is also the
// cache encoding of a chart.
type ChartEntry struct {
	Chart chart.Chart `json:"chart"`
	Rows  int         `json:"rows"`
}

// Execute runs the layout → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Layout
	computeStart := time.Now()
	entry, chartHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = entry.Chart
	result.Stats.ComputeTime = time.Since(computeStart)
	result.Stats.TotalSeats = entry.Chart.SeatCount()
	result.Stats.Rows = entry.Rows
	result.Stats.Groups = len(entry.Chart.Groups)
	result.CacheInfo.ChartHit = chartHit

	if data, err := json.Marshal(entry.Chart); err == nil {
		result.ChartHash = cache.Hash(data)
	}

	r.Logger.Info("computed chart",
		"seats", result.Stats.TotalSeats,
		"rows", result.Stats.Rows,
		"groups", result.Stats.Groups,
		"cached", chartHit,
		"duration", result.Stats.ComputeTime)

	// Stage 2: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, result.Chart, result.ChartHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported chart",
		"formats", opts.Formats,
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// LayoutWithCacheInfo computes the chart with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (*ChartEntry, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.ChartKey(opts.ChartKeyOpts())

	if !opts.Refresh {
		if entry, ok := r.cachedChart(ctx, cacheKey); ok {
			return entry, true, nil
		}
	}

	hooks := observability.Pipeline()
	total := chart.TotalSeats(opts.Groups)
	hooks.OnLayoutStart(ctx, total, len(opts.Groups))
	start := time.Now()

	layout, err := chart.Compute(opts.Scale, opts.Groups, chart.WithMaxRows(opts.MaxRows))
	if err != nil {
		hooks.OnLayoutComplete(ctx, total, 0, time.Since(start), err)
		if herrors.Is(err, herrors.ErrCodeInternal) {
			opts.Logger.Error("layout invariant violated", "seats", total, "scale", opts.Scale, "err", err)
		}
		return nil, false, err
	}
	hooks.OnLayoutComplete(ctx, total, len(layout.Rows), time.Since(start), nil)

	entry := &ChartEntry{Chart: layout.Chart(opts.Groups), Rows: len(layout.Rows)}
	opts.Logger.Debug("planned rows",
		"seats", total,
		"rows", len(layout.Rows),
		"circle_radius", layout.CircleRadius)

	if data, err := json.Marshal(entry); err == nil {
		r.store(ctx, keyTypeChart, cacheKey, data, r.ttl(cache.TTLChart))
	}
	return entry, false, nil
}

// ExportWithCacheInfo exports c in every requested format with caching and
// reports whether all artifacts came from the cache. chartHash keys the
// artifact cache; an empty hash disables it.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, c chart.Chart, chartHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.formats))
	allCached := chartHash != "" && !opts.Refresh
	if allCached {
		for _, format := range opts.formats {
			key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
			data, hit := r.lookup(ctx, keyTypeArtifact, key)
			if !hit {
				allCached = false
				break
			}
			artifacts[string(format)] = data
		}
	}
	if allCached {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Formats)
	start := time.Now()

	for _, format := range opts.formats {
		data, err := r.exportOne(format, c, opts)
		if err != nil {
			hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, err
		}
		artifacts[string(format)] = data
		if chartHash != "" {
			key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
			r.store(ctx, keyTypeArtifact, key, data, r.ttl(cache.TTLArtifact))
		}
	}
	hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), nil)

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) exportOne(format export.Format, c chart.Chart, opts Options) ([]byte, error) {
	if format == export.FormatJSON {
		data, err := export.ExportJSON(c, export.WithJSONScale(opts.Scale))
		if err != nil {
			return nil, herrors.Wrap(herrors.ErrCodeInternal, err, "export json")
		}
		return data, nil
	}
	return export.Export(format, c)
}

func (r *Runner) cachedChart(ctx context.Context, key string) (*ChartEntry, bool) {
	data, hit := r.lookup(ctx, keyTypeChart, key)
	if !hit {
		return nil, false
	}
	var entry ChartEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		return nil, false
	}
	return &entry, true
}

// lookup reads key from the cache. Backend errors count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

// store writes key to the cache. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
