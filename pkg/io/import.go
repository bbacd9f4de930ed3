package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hemicycle/pkg/chart"
	herrors "github.com/matzehuels/hemicycle/pkg/errors"
)

// Encoding names a request file encoding.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingTOML Encoding = "toml"
)

// Request is a decoded seating request. Scale is zero when the file did not
// set one.
type Request struct {
	Scale  float64       `json:"scale,omitempty" toml:"scale"`
	Groups []chart.Group `json:"groups" toml:"groups"`
}

// ReadRequest decodes a request from r. Unknown fields are rejected so typos
// such as "seats" for "num_seats" do not silently produce empty groups.
// ReadRequest does not validate the values; see [chart.Validate].
func ReadRequest(r io.Reader, enc Encoding) (*Request, error) {
	var req Request
	switch enc {
	case EncodingJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, herrors.Wrap(herrors.ErrCodeInvalidInput, err, "decode json")
		}
	case EncodingTOML:
		md, err := toml.NewDecoder(r).Decode(&req)
		if err != nil {
			return nil, herrors.Wrap(herrors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, herrors.New(herrors.ErrCodeInvalidInput, "unknown field %q", undecoded[0].String())
		}
	default:
		return nil, herrors.New(herrors.ErrCodeUnsupported, "unsupported request encoding %q", enc)
	}
	return &req, nil
}

// EncodingFor returns the encoding implied by a file name's extension.
func EncodingFor(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return EncodingJSON, nil
	case ".toml":
		return EncodingTOML, nil
	}
	return "", herrors.New(herrors.ErrCodeUnsupported, "cannot infer encoding of %s (want .json or .toml)", path)
}

// ImportRequest reads the request file at path.
func ImportRequest(path string) (*Request, error) {
	if err := herrors.ValidatePath(path); err != nil {
		return nil, err
	}
	enc, err := EncodingFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, herrors.Wrap(herrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	req, err := ReadRequest(f, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}
