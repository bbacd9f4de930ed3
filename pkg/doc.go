// Package pkg provides the core libraries for Hemicycle seating charts.
//
// # Overview
//
// Hemicycle lays out parliament seats on concentric half-circle rows and
// hands each group a contiguous wedge, left to right. The pkg directory is
// organized into three main areas:
//
//  1. [chart] - Domain logic (row planning, seat placement, partitioning)
//  2. [cache], [config], [observability] - Infrastructure
//  3. [pipeline], [api], [export], [io] - Orchestration and outputs
//
// # Architecture
//
// The typical data flow through Hemicycle:
//
//	Groups file / HTTP request
//	         ↓
//	    [chart] package (rows → seats → ordered seats → groups)
//	         ↓
//	    [export] package (JSON, XLSX, DXF)
//	         ↓
//	    file on disk / HTTP response
//
// # Quick Start
//
//	c, err := chart.Build(100, []chart.Group{
//	    {Label: "Left", NumSeats: 30},
//	    {Label: "Right", NumSeats: 20},
//	})
//	if err != nil {
//	    return err
//	}
//	data, err := export.ExportXLSX(c)
//
// With caching and several outputs:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scale:   100,
//	    Groups:  groups,
//	    Formats: []string{"json", "dxf"},
//	})
//
// # Main Packages
//
// [chart] - Row planner ([chart.PlanRows]), seat placer ([chart.PlaceSeats],
// [chart.SortSeats]) and the orchestration that partitions ordered seats
// among groups ([chart.Build]).
//
// [export] - Coordinate exports: indented JSON, an excelize workbook with a
// seat sheet and a summary sheet, and a DXF drawing with one layer per group.
//
// [io] - Reading groups files (JSON or TOML) and writing exports to disk.
//
// [pipeline] - Validate → layout → export with chart and artifact caching,
// shared by the CLI and the HTTP API.
//
// [cache] - File, Redis and no-op cache backends with content-hashed keys.
//
// [api] - HTTP API built on chi.
//
// [config] - TOML configuration with environment overrides.
//
// [observability] - Hooks for layout, export, cache and request events.
//
// [errors] - Structured error codes and input validation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/chart/...    # Specific package
//	go test -run Example       # Examples only
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/chart
// [cache]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/api
// [export]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/export
// [io]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/hemicycle/pkg/errors
package pkg
