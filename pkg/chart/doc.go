// Package chart computes hemicycle seat layouts.
//
// # Overview
//
// A hemicycle arranges a fixed number of seats on concentric half circles
// (rows) around a focal point, the way parliament charts and lecture halls
// are drawn. This package decides how many rows are needed, how many seats
// each row holds, where every seat sits in 2D, and in which order seats are
// handed out to labeled groups.
//
// The computation runs in three stages:
//
//  1. [PlanRows] grows rows outward until their combined capacity covers the
//     requested seat count, then trims the surplus so the row counts sum to
//     the target exactly.
//  2. [PlaceSeats] spreads each row's seats evenly over the angle range
//     [0, π] and computes an ordering key for every seat.
//  3. [SortSeats] orders all seats by that key (left to right across every
//     row at once) and [Partition] slices the ordered sequence into
//     contiguous per-group chunks.
//
// [Build] runs all three stages from a scale and a list of groups:
//
//	c, err := chart.Build(100, []chart.Group{
//	    {Label: "Left", NumSeats: 50},
//	    {Label: "Centre", NumSeats: 30},
//	    {Label: "Right", NumSeats: 20},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, g := range c.Groups {
//	    fmt.Println(g.Label, len(g.Seats))
//	}
//
// [Compute] returns the intermediate [Layout] (rows, ordered seats, circle
// radius) for callers that want statistics as well as the chart.
//
// # Geometry
//
// Every size derives from a single circle radius, computed from the scale
// and the total seat count by [CircleRadius]. Row i sits at
//
//	radius(i) = circleRadius*2*(i+4) + padding*2.5*i
//
// with padding = circleRadius/5, and holds ceil(π*radius(i)/(circleRadius*2.5))
// seats before trimming. Rows therefore never overlap and their radii strictly
// increase outward.
//
// Seats span exactly a half circle: the first seat of a row sits at angle 0
// (x = radius, y = 0) and the last at angle π (x = -radius). Y grows
// negative, which puts the arc above the center in screen coordinates.
//
// # Surplus Trimming
//
// Rows are added whole, so their capacity usually overshoots. The surplus is
// removed proportionally to each row's size relative to the outermost row,
// rounded down. Any remainder is taken one seat per row starting from the
// innermost row, so inner rows lose seats first on ties. This order is part of
// the output contract and must not change.
//
// # Concurrency
//
// All functions are pure: they allocate their results and never retain or
// modify their inputs. They are safe for concurrent use.
package chart
