package export

import (
	"slices"
	"strings"

	herrors "github.com/matzehuels/hemicycle/pkg/errors"
)

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatDXF  Format = "dxf"
)

var formats = []Format{FormatJSON, FormatXLSX, FormatDXF}

var contentTypes = map[Format]string{
	FormatJSON: "application/json",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatDXF:  "image/vnd.dxf",
}

// Formats returns every supported format in a stable order.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat parses a single format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(formats, f) {
		return "", herrors.New(herrors.ErrCodeInvalidFormat, "unknown format %q (supported: json, xlsx, dxf)", s)
	}
	return f, nil
}

// ParseFormats parses a comma-separated list such as "json,xlsx".
// Duplicates are dropped; an empty list yields only json.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []Format{FormatJSON}
	}
	return out, nil
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string { return string(f) }
