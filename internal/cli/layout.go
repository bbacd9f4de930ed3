package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hemicycle/pkg/export"
	hio "github.com/matzehuels/hemicycle/pkg/io"
	"github.com/matzehuels/hemicycle/pkg/pipeline"
)

// layoutFlags holds the flags of the layout command.
type layoutFlags struct {
	output  string
	formats string
	scale   float64
	maxRows int
	noCache bool
	refresh bool
}

// layoutCommand creates the layout command for computing seating charts.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [groups.json|groups.toml]",
		Short: "Compute a seating chart from a groups file",
		Long: `Compute a seating chart from a groups file.

The groups file lists the parties in seating order, left to right:

  {"scale": 100, "groups": [{"label": "Left", "num_seats": 30}, {"label": "Right", "num_seats": 20}]}

or, in TOML:

  scale = 100

  [[groups]]
  label = "Left"
  num_seats = 30

The chart is written in every requested format (json, xlsx, dxf) next to the
input file unless -o is given. Results are cached for faster subsequent runs.

A chart with a single seat needs a scale below 2 (for example --scale 1);
larger scales, including the default of 100, leave no room for the seat.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scaleSet := cmd.Flags().Changed("scale")
			return c.runLayout(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], flags, scaleSet)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file base name (default: <input>-chart)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output formats: json, xlsx, dxf (comma-separated)")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "chart scale (overrides the groups file and config)")
	cmd.Flags().IntVar(&flags.maxRows, "max-rows", 0, "maximum number of seat rows")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout loads the groups file, runs the pipeline, and writes every artifact.
func (c *CLI) runLayout(ctx context.Context, p *printer, input string, flags layoutFlags, scaleSet bool) error {
	logger := loggerFromContext(ctx)

	req, err := hio.ImportRequest(input)
	if err != nil {
		return fmt.Errorf("load groups %s: %w", input, err)
	}

	formats, err := c.layoutFormats(flags.formats)
	if err != nil {
		return err
	}

	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	opts := pipeline.Options{
		Scale:   c.resolveScale(req.Scale, flags.scale, scaleSet),
		Groups:  req.Groups,
		Formats: names,
		MaxRows: flags.maxRows,
		Refresh: flags.refresh,
		Logger:  logger,
	}
	if opts.MaxRows == 0 {
		opts.MaxRows = c.cfg.Chart.MaxRows
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, os.Stderr, "Computing chart...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		p.failure("Layout failed")
		return err
	}

	p.success("Seating chart computed")
	p.chartStats(result.Stats.TotalSeats, result.Stats.Rows, result.Stats.Groups, result.CacheInfo.ChartHit)
	p.keyValue("Scale", fmt.Sprintf("%g", opts.Scale))
	p.keyValue("Seat radius", fmt.Sprintf("%.4g", result.Chart.Radius))

	written, err := hio.WriteArtifacts(flags.output, input, result.Artifacts, formats)
	if err != nil {
		return err
	}
	prog.done("wrote chart", "files", len(written))

	p.blank()
	p.info("Wrote %d file(s)", len(written))
	for _, path := range written {
		p.file(path)
	}
	if len(written) == 1 && strings.HasSuffix(written[0], export.FormatJSON.Extension()) {
		p.blank()
		p.nextStep("Spreadsheet and CAD exports", "hemicycle layout "+input+" -f xlsx,dxf")
	}
	return nil
}

// layoutFormats parses the flag value, or the configured output formats
// when the flag is empty.
func (c *CLI) layoutFormats(flag string) ([]export.Format, error) {
	if flag == "" {
		flag = strings.Join(c.cfg.Output.Formats, ",")
	}
	return export.ParseFormats(flag)
}

// resolveScale picks the scale: an explicit --scale wins over the groups
// file, which wins over the configured default.
func (c *CLI) resolveScale(fromFile, fromFlag float64, flagSet bool) float64 {
	switch {
	case flagSet:
		return fromFlag
	case fromFile != 0:
		return fromFile
	default:
		return c.cfg.Chart.Scale
	}
}
