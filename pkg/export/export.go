package export

import (
	"github.com/matzehuels/hemicycle/pkg/chart"
	herrors "github.com/matzehuels/hemicycle/pkg/errors"
)

// Export serializes c in format f.
func Export(f Format, c chart.Chart) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		data, err = ExportJSON(c)
	case FormatXLSX:
		data, err = ExportXLSX(c)
	case FormatDXF:
		data, err = ExportDXF(c)
	default:
		return nil, herrors.New(herrors.ErrCodeUnsupported, "unsupported export format %q", f)
	}
	if err != nil {
		return nil, herrors.Wrap(herrors.ErrCodeInternal, err, "export %s", f)
	}
	return data, nil
}
