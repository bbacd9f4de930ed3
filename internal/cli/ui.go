package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // primary
	colorGreen = lipgloss.Color("35")  // success
	colorRed   = lipgloss.Color("167") // errors
	colorBlue  = lipgloss.Color("75")  // commands
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // labels
	colorDim   = lipgloss.Color("240") // muted
)

var (
	// StyleHighlight marks addresses and other values worth noticing.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFail    = lipgloss.NewStyle().Foreground(colorRed)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Printer
// =============================================================================

// printer writes human-facing command output. Commands build one from
// cmd.OutOrStdout so tests can capture what a user would see.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

// success prints a check-marked line.
func (p *printer) success(format string, args ...any) {
	p.line(styleOK.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// failure prints a cross-marked line.
func (p *printer) failure(format string, args ...any) {
	p.line(styleFail.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (p *printer) info(format string, args ...any) {
	p.line(styleLabel.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints a muted, indented line.
func (p *printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints an output path below a summary line.
func (p *printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p *printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// chartStats prints the size of a chart on one line, ending with whether
// the chart came from the cache.
func (p *printer) chartStats(seats, rows, groups int, cached bool) {
	parts := []string{fmt.Sprintf("%d seats", seats)}
	if rows > 0 {
		parts = append(parts, fmt.Sprintf("%d rows", rows))
	}
	if groups > 0 {
		parts = append(parts, fmt.Sprintf("%d groups", groups))
	}
	status := styleLabel.Render("fresh")
	if cached {
		status = styleOK.Render("cached")
	}
	p.line("  " + StyleDim.Render(strings.Join(parts, " · ")) + StyleDim.Render(" · ") + status)
}

// nextStep suggests a follow-up command.
func (p *printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func (p *printer) blank() {
	p.line("")
}
