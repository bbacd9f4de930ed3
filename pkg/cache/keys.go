package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Key prefixes name the kind of value stored under a key.
const (
	prefixChart    = "chart"
	prefixArtifact = "artifact"
)

// Keyer builds cache keys.
type Keyer interface {
	// ChartKey identifies a chart by its inputs.
	ChartKey(opts ChartKeyOpts) string

	// ArtifactKey identifies an exported artifact of a chart.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// ChartKeyOpts holds the inputs that determine a chart.
type ChartKeyOpts struct {
	Scale   float64  `json:"scale"`
	Labels  []string `json:"labels"`
	Seats   []int    `json:"seats"`
	MaxRows int      `json:"max_rows,omitempty"`
}

// ArtifactKeyOpts holds the export settings for an artifact. Scale is set
// for formats that record it in the document.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChartKey hashes the chart inputs.
func (DefaultKeyer) ChartKey(opts ChartKeyOpts) string {
	return prefixChart + ":" + digest(opts)
}

// ArtifactKey hashes the chart hash together with the export settings.
// Two charts with equal content share their artifacts.
func (DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return prefixArtifact + ":" + digest(chartHash, opts)
}

var _ Keyer = DefaultKeyer{}

// digest streams the JSON encoding of each part into a SHA-256 sum. The
// parts are plain structs and strings, so encoding cannot fail.
func digest(parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. The pipeline uses it as the
// content hash of a chart document.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
