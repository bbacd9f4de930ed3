// Package export serializes a computed [chart.Chart] into interchange
// formats for downstream tools.
//
// Three formats are supported:
//
//   - json: the chart itself (groups with seat coordinates, seat radius)
//   - xlsx: a workbook with one row per seat and a per-group summary sheet
//   - dxf: a CAD drawing with one layer per group and a circle per seat
//
// None of these produce pictures; they carry coordinates for a renderer or
// CAD tool to consume. Use [Export] to dispatch on a [Format], or call the
// format functions directly.
//
// All exporters are pure functions of the chart and safe to call
// concurrently.
package export
