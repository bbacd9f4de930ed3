// Package io reads seating requests from files and writes computed charts.
//
// # Request Format
//
// A request names the scale and the groups to seat, in seating order. It can
// be written as JSON:
//
//	{
//	  "scale": 100,
//	  "groups": [
//	    {"label": "Left", "num_seats": 50},
//	    {"label": "Right", "num_seats": 30}
//	  ]
//	}
//
// or as TOML:
//
//	scale = 100
//
//	[[groups]]
//	label = "Left"
//	num_seats = 50
//
//	[[groups]]
//	label = "Right"
//	num_seats = 30
//
// The scale may be omitted; callers then supply a default. Use [ReadRequest]
// to decode from any io.Reader or [ImportRequest] to read a file, in which
// case the format is chosen by extension.
//
// # Chart Output
//
// [WriteArtifacts] writes exported artifacts next to their input file, or
// under the base name given with -o, replacing each file atomically.
//
// [export.Format]: github.com/matzehuels/hemicycle/pkg/export.Format
package io
