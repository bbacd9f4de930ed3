package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hemicycle/pkg/chart"
	herrors "github.com/matzehuels/hemicycle/pkg/errors"
	"github.com/matzehuels/hemicycle/pkg/export"
)

const requestJSON = `{
  "scale": 100,
  "groups": [
    {"label": "Left", "num_seats": 50},
    {"label": "Right", "num_seats": 30}
  ]
}`

const requestTOML = `
scale = 100

[[groups]]
label = "Left"
num_seats = 50

[[groups]]
label = "Right"
num_seats = 30
`

func TestReadRequest(t *testing.T) {
	tests := []struct {
		name  string
		input string
		enc   Encoding
	}{
		{"json", requestJSON, EncodingJSON},
		{"toml", requestTOML, EncodingTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ReadRequest(strings.NewReader(tt.input), tt.enc)
			if err != nil {
				t.Fatalf("ReadRequest: %v", err)
			}
			if req.Scale != 100 {
				t.Errorf("scale = %v, want 100", req.Scale)
			}
			want := []chart.Group{{Label: "Left", NumSeats: 50}, {Label: "Right", NumSeats: 30}}
			if len(req.Groups) != len(want) {
				t.Fatalf("got %d groups, want %d", len(req.Groups), len(want))
			}
			for i := range want {
				if req.Groups[i] != want[i] {
					t.Errorf("group %d = %+v, want %+v", i, req.Groups[i], want[i])
				}
			}
		})
	}
}

func TestReadRequestRejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		enc   Encoding
	}{
		{"json", `{"groups": [{"label": "A", "seats": 3}]}`, EncodingJSON},
		{"toml", "[[groups]]\nlabel = \"A\"\nseats = 3\n", EncodingTOML},
		{"malformed json", `{"groups": [`, EncodingJSON},
		{"malformed toml", "scale = = 1", EncodingTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRequest(strings.NewReader(tt.input), tt.enc)
			if !herrors.Is(err, herrors.ErrCodeInvalidInput) {
				t.Errorf("got %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestReadRequestNoScale(t *testing.T) {
	req, err := ReadRequest(strings.NewReader(`{"groups": []}`), EncodingJSON)
	if err != nil {
		t.Fatal(err)
	}
	if req.Scale != 0 {
		t.Errorf("scale = %v, want 0 when omitted", req.Scale)
	}
}

func TestEncodingFor(t *testing.T) {
	tests := []struct {
		path string
		want Encoding
		ok   bool
	}{
		{"groups.json", EncodingJSON, true},
		{"dir/Groups.TOML", EncodingTOML, true},
		{"groups.yaml", "", false},
		{"groups", "", false},
	}
	for _, tt := range tests {
		got, err := EncodingFor(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("EncodingFor(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestImportRequest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groups.toml")
	if err := os.WriteFile(path, []byte(requestTOML), 0644); err != nil {
		t.Fatal(err)
	}

	req, err := ImportRequest(path)
	if err != nil {
		t.Fatalf("ImportRequest: %v", err)
	}
	if len(req.Groups) != 2 {
		t.Errorf("got %d groups, want 2", len(req.Groups))
	}

	_, err = ImportRequest(filepath.Join(dir, "missing.json"))
	if !herrors.Is(err, herrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}

	_, err = ImportRequest("")
	if !herrors.Is(err, herrors.ErrCodeInvalidPath) {
		t.Errorf("empty path: got %v, want INVALID_PATH", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	c, err := chart.Build(100, []chart.Group{{Label: "A", NumSeats: 12}})
	if err != nil {
		t.Fatal(err)
	}
	jsonDoc, err := export.ExportJSON(c)
	if err != nil {
		t.Fatal(err)
	}
	workbook, err := export.Export(export.FormatXLSX, c)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "groups.json")
	artifacts := map[string][]byte{"json": jsonDoc, "xlsx": workbook}

	paths, err := WriteArtifacts("", input, artifacts, []export.Format{export.FormatXLSX, export.FormatJSON})
	if err != nil {
		t.Fatalf("WriteArtifacts: %v", err)
	}
	want := []string{filepath.Join(dir, "groups-chart.xlsx"), filepath.Join(dir, "groups-chart.json")}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	got, err := os.ReadFile(paths[1])
	if err != nil || !bytes.Equal(got, jsonDoc) {
		t.Errorf("json artifact not written verbatim: %v", err)
	}
	if !strings.Contains(string(got), `"label": "A"`) {
		t.Errorf("unexpected json: %s", got)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("temporary file %s left behind", e.Name())
		}
	}

	if _, err := WriteArtifacts("", input, artifacts, []export.Format{export.FormatDXF}); err == nil {
		t.Error("missing dxf artifact should fail")
	}
}

func TestWriteArtifactReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.dxf")
	for _, content := range []string{"old drawing", "new"} {
		if err := WriteArtifact(path, []byte(content)); err != nil {
			t.Fatalf("WriteArtifact: %v", err)
		}
	}
	if got, _ := os.ReadFile(path); string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}

	if err := WriteArtifact(filepath.Join(t.TempDir(), "missing", "x.json"), nil); err == nil {
		t.Error("missing directory should fail")
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		base, input string
		f           export.Format
		want        string
	}{
		{"out", "groups.json", export.FormatXLSX, "out.xlsx"},
		{"out.json", "groups.json", export.FormatDXF, "out.dxf"},
		{"", "data/groups.json", export.FormatJSON, "data/groups-chart.json"},
		{"", "groups.toml", export.FormatDXF, "groups-chart.dxf"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.base, tt.input, tt.f); got != tt.want {
			t.Errorf("OutputPath(%q, %q, %s) = %q, want %q", tt.base, tt.input, tt.f, got, tt.want)
		}
	}
}
