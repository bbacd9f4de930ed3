package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yofu/dxf"

	"github.com/matzehuels/hemicycle/pkg/chart"
)

// DefaultLayer receives seats of groups whose label is empty.
const DefaultLayer = "SEATS"

// ExportDXF writes the chart as a DXF drawing.
//
// Every group gets its own layer, named after its label, and every seat
// becomes a circle of the chart's seat radius centred on the seat. The
// y-axis is flipped so the hemicycle opens upwards as CAD tools expect.
func ExportDXF(c chart.Chart) ([]byte, error) {
	d := dxf.NewDrawing()

	// Layer 0 exists in every drawing.
	used := map[string]int{"0": 1}
	for _, g := range c.Groups {
		name := layerName(g.Label, used)
		if _, err := d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return nil, fmt.Errorf("layer %s: %w", name, err)
		}
		for _, p := range g.Seats {
			if _, err := d.Circle(p.X, -p.Y, 0, c.Radius); err != nil {
				return nil, fmt.Errorf("seat in %s: %w", name, err)
			}
		}
	}

	tmpDir, err := os.MkdirTemp("", "hemicycle-dxf-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "chart.dxf")
	if err := d.SaveAs(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// layerName maps a group label to a unique DXF layer name. Characters DXF
// forbids in table names are replaced with underscores and repeated names
// get a numeric suffix.
func layerName(label string, used map[string]int) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`<>/\":;?*|=,`+"`", r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(label))
	if name == "" {
		name = DefaultLayer
	}
	key := strings.ToUpper(name)
	used[key]++
	if n := used[key]; n > 1 {
		name = fmt.Sprintf("%s_%d", name, n)
		used[strings.ToUpper(name)]++
	}
	return name
}
