package export

import (
	"encoding/json"

	"github.com/matzehuels/hemicycle/pkg/chart"
)

// JSONOption configures JSON output via [ExportJSON].
type JSONOption func(*jsonExporter)

type jsonExporter struct {
	compact bool
	scale   float64
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(e *jsonExporter) { e.compact = true } }

// WithJSONScale records the scale the chart was computed at, so the document
// can be recomputed later.
func WithJSONScale(scale float64) JSONOption { return func(e *jsonExporter) { e.scale = scale } }

type jsonOutput struct {
	Scale      float64            `json:"scale,omitempty"`
	TotalSeats int                `json:"total_seats"`
	Groups     []chart.GroupSeats `json:"groups"`
	Radius     float64            `json:"radius"`
}

// ExportJSON encodes the chart as a JSON document:
//
//	{
//	  "total_seats": 12,
//	  "groups": [{"label": "A", "seats": [{"x": 8.1, "y": -0.3}, ...]}],
//	  "radius": 18.46
//	}
//
// Groups keep their input order and seats their assignment order.
func ExportJSON(c chart.Chart, opts ...JSONOption) ([]byte, error) {
	e := jsonExporter{}
	for _, opt := range opts {
		opt(&e)
	}

	out := jsonOutput{
		Scale:      e.scale,
		TotalSeats: c.SeatCount(),
		Groups:     c.Groups,
		Radius:     c.Radius,
	}
	if out.Groups == nil {
		out.Groups = []chart.GroupSeats{}
	}

	if e.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
