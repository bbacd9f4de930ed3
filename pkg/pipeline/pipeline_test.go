package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/hemicycle/pkg/cache"
	"github.com/matzehuels/hemicycle/pkg/chart"
	herrors "github.com/matzehuels/hemicycle/pkg/errors"
	"github.com/matzehuels/hemicycle/pkg/observability"
)

func testOptions() Options {
	return Options{
		Scale: 100,
		Groups: []chart.Group{
			{Label: "Left", NumSeats: 7},
			{Label: "Right", NumSeats: 5},
		},
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if len(o.Formats) != 1 || o.Formats[0] != "json" {
		t.Errorf("Formats = %v, want [json]", o.Formats)
	}
	if o.MaxRows != chart.DefaultMaxRows {
		t.Errorf("MaxRows = %d", o.MaxRows)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code herrors.Code
	}{
		{"zero scale", Options{Groups: []chart.Group{{Label: "A", NumSeats: 1}}}, herrors.ErrCodeInvalidScale},
		{"negative seats", Options{Scale: 1, Groups: []chart.Group{{Label: "A", NumSeats: -1}}}, herrors.ErrCodeInvalidGroup},
		{"bad format", Options{Scale: 1, Formats: []string{"svg"}}, herrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !herrors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}

	o := testOptions()
	o.Formats = []string{"JSON", "xlsx"}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("valid options: %v", err)
	}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(o.formats) != 2 || o.formats[0] != "json" {
		t.Errorf("parsed formats = %v", o.formats)
	}
}

func TestChartKeyOpts(t *testing.T) {
	a := testOptions()
	a.SetDefaults()
	b := testOptions()
	b.Groups[1].NumSeats = 6
	b.SetDefaults()

	k := cache.NewDefaultKeyer()
	if k.ChartKey(a.ChartKeyOpts()) == k.ChartKey(b.ChartKeyOpts()) {
		t.Error("different groups should produce different chart keys")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := testOptions()
	opts.Formats = []string{"json", "xlsx", "dxf"}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.TotalSeats != 12 || result.Stats.Rows != 2 || result.Stats.Groups != 2 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if len(result.Chart.Groups[0].Seats) != 7 || len(result.Chart.Groups[1].Seats) != 5 {
		t.Errorf("unexpected partition: %d, %d", len(result.Chart.Groups[0].Seats), len(result.Chart.Groups[1].Seats))
	}
	if len(result.ChartHash) != 64 {
		t.Errorf("ChartHash = %q", result.ChartHash)
	}
	for _, f := range opts.Formats {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("missing artifact %s", f)
		}
	}
	if result.CacheInfo.ChartHit || result.CacheInfo.ExportHit {
		t.Errorf("NullCache should never hit: %+v", result.CacheInfo)
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !second.CacheInfo.ChartHit || !second.CacheInfo.ExportHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.ChartHash != first.ChartHash {
		t.Error("cached chart hashes differ")
	}
	if second.Stats.Rows != first.Stats.Rows {
		t.Errorf("cached row count %d, want %d", second.Stats.Rows, first.Stats.Rows)
	}
	if string(second.Artifacts["json"]) != string(first.Artifacts["json"]) {
		t.Error("cached json artifact differs")
	}

	refresh := testOptions()
	refresh.Refresh = true
	third, err := r.Execute(ctx, refresh)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.ChartHit || third.CacheInfo.ExportHit {
		t.Errorf("Refresh should bypass the cache: %+v", third.CacheInfo)
	}
}

func TestExecuteZeroSeats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	result, err := r.Execute(context.Background(), Options{
		Scale:  100,
		Groups: []chart.Group{{Label: "A", NumSeats: 0}},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Chart.Radius != 0 || result.Stats.Rows != 0 {
		t.Errorf("zero seats: radius %v, rows %d", result.Chart.Radius, result.Stats.Rows)
	}
}

func TestExecuteJSONArtifactKeyedByScale(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)

	run := func(scale float64) (*Result, float64) {
		t.Helper()
		result, err := r.Execute(ctx, Options{
			Scale:   scale,
			Groups:  []chart.Group{{Label: "A", NumSeats: 0}},
			Formats: []string{"json", "dxf"},
		})
		if err != nil {
			t.Fatalf("Execute(scale %v): %v", scale, err)
		}
		var doc struct {
			Scale float64 `json:"scale"`
		}
		if err := json.Unmarshal(result.Artifacts["json"], &doc); err != nil {
			t.Fatalf("decode json artifact: %v", err)
		}
		return result, doc.Scale
	}

	first, scale := run(1)
	if scale != 1 {
		t.Fatalf("first document scale = %v, want 1", scale)
	}
	second, scale := run(50)
	if second.ChartHash != first.ChartHash {
		t.Fatalf("empty charts should share a hash at every scale")
	}
	if scale != 50 {
		t.Errorf("second document scale = %v, want 50", scale)
	}
	if second.CacheInfo.ExportHit {
		t.Error("a document for another scale must not be served from the cache")
	}

	third, scale := run(50)
	if !third.CacheInfo.ExportHit || scale != 50 {
		t.Errorf("repeat at scale 50: hit %v, scale %v", third.CacheInfo.ExportHit, scale)
	}
}

func TestArtifactKeyOptsScale(t *testing.T) {
	opts := Options{Scale: 40}
	if got := opts.ArtifactKeyOpts("json"); got.Scale != 40 {
		t.Errorf("json key scale = %v, want 40", got.Scale)
	}
	if got := opts.ArtifactKeyOpts("xlsx"); got.Scale != 0 {
		t.Errorf("xlsx key scale = %v, want 0 so scales share workbooks", got.Scale)
	}
}

func TestExecuteRejectsInvalidGeometry(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Scale:  100,
		Groups: []chart.Group{{Label: "Speaker", NumSeats: 1}},
	})
	if !herrors.Is(err, herrors.ErrCodeInvalidGeometry) {
		t.Errorf("got %v, want INVALID_GEOMETRY", err)
	}
}

func TestExecuteCacheErrorsAreMisses(t *testing.T) {
	r := NewRunner(failingCache{}, nil, nil)
	result, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("cache failures should not fail the run: %v", err)
	}
	if result.CacheInfo.ChartHit {
		t.Error("failing cache reported a hit")
	}
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), testOptions()); err != nil {
			t.Fatal(err)
		}
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.layouts != 1 {
		t.Errorf("layouts = %d, want 1 (second run is cached)", hooks.layouts)
	}
	if hooks.exports != 1 {
		t.Errorf("exports = %d, want 1", hooks.exports)
	}
	if hooks.hits["chart"] != 1 || hooks.misses["chart"] != 1 {
		t.Errorf("chart hits/misses = %d/%d", hooks.hits["chart"], hooks.misses["chart"])
	}
	if hooks.sets["chart"] != 1 || hooks.sets["artifact"] != 1 {
		t.Errorf("sets = %v", hooks.sets)
	}
}

func TestRunnerClose(t *testing.T) {
	if err := NewRunner(nil, nil, nil).Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

// failingCache returns an error from every operation.
func TestRunnerTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want []time.Duration
	}{
		{"defaults", 0, []time.Duration{cache.TTLChart, cache.TTLArtifact}},
		{"override", time.Hour, []time.Duration{time.Hour, time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ttlCache{}
			r := NewRunner(rec, nil, nil)
			r.TTL = tt.ttl
			if _, err := r.Execute(context.Background(), testOptions()); err != nil {
				t.Fatalf("Execute error: %v", err)
			}
			if len(rec.ttls) != len(tt.want) {
				t.Fatalf("got %d writes, want %d", len(rec.ttls), len(tt.want))
			}
			for i, want := range tt.want {
				if rec.ttls[i] != want {
					t.Errorf("write %d ttl = %v, want %v", i, rec.ttls[i], want)
				}
			}
		})
	}
}

// ttlCache misses every read and records the TTL of every write.
type ttlCache struct {
	ttls []time.Duration
}

func (c *ttlCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (c *ttlCache) Set(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
	c.ttls = append(c.ttls, ttl)
	return nil
}
func (c *ttlCache) Delete(context.Context, string) error { return nil }
func (c *ttlCache) Close() error                         { return nil }

type failingCache struct{}

var errBackend = errors.New("backend down")

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errBackend
}
func (failingCache) Set(context.Context, string, []byte, time.Duration) error { return errBackend }
func (failingCache) Delete(context.Context, string) error                      { return errBackend }
func (failingCache) Close() error                                              { return nil }

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu                 sync.Mutex
	layouts, exports   int
	hits, misses, sets map[string]int
}

func (h *recordingHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func (h *recordingHooks) OnExportComplete(context.Context, []string, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exports++
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.count(&h.hits, keyType)
}

func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.count(&h.misses, keyType)
}

func (h *recordingHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.count(&h.sets, keyType)
}

func (h *recordingHooks) count(m *map[string]int, key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if *m == nil {
		*m = make(map[string]int)
	}
	(*m)[key]++
}
