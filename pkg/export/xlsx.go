package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/hemicycle/pkg/chart"
)

// Sheet names used by [ExportXLSX].
const (
	SheetSeats   = "Seats"
	SheetSummary = "Summary"
)

var (
	seatsHeader   = []any{"Group", "Seat", "X", "Y"}
	summaryHeader = []any{"Group", "Seats"}
)

// ExportXLSX writes the chart as an Excel workbook.
//
// The Seats sheet has one row per seat (group label, 1-based seat number
// within the group, x, y) in assignment order. The Summary sheet lists the
// seat count of every group followed by the total and the seat radius.
func ExportXLSX(c chart.Chart) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSeats); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, err
	}

	rows := [][]any{seatsHeader}
	for _, g := range c.Groups {
		for i, p := range g.Seats {
			rows = append(rows, []any{g.Label, i + 1, p.X, p.Y})
		}
	}
	if err := writeRows(f, SheetSeats, rows); err != nil {
		return nil, err
	}

	summary := [][]any{summaryHeader}
	for _, g := range c.Groups {
		summary = append(summary, []any{g.Label, len(g.Seats)})
	}
	summary = append(summary,
		[]any{"Total", c.SeatCount()},
		[]any{"Seat radius", c.Radius},
	)
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return err
			}
		}
	}
	return nil
}
