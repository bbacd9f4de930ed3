package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/hemicycle/pkg/export"
)

// WriteArtifacts writes each exported artifact to its [OutputPath] and
// returns the written paths in the order of formats. A format with no
// artifact is an error; nothing after it is written.
func WriteArtifacts(base, input string, artifacts map[string][]byte, formats []export.Format) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f.String()]
		if !ok {
			return paths, fmt.Errorf("no %s artifact", f)
		}
		path := OutputPath(base, input, f)
		if err := WriteArtifact(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteArtifact writes data to path through a temporary sibling file, so an
// interrupted run never leaves a truncated workbook or drawing behind.
func WriteArtifact(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// OutputPath returns the file a format is written to. An extension on base
// is replaced. An empty base writes "<input>-chart" next to the input file.
func OutputPath(base, input string, f export.Format) string {
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input)) + "-chart"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + f.Extension()
}
