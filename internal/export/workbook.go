// Package export writes comparison reports as spreadsheets.
package export

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/statcompare/internal/compare"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

// Sheet names written by WriteWorkbook.
const (
	SheetRadar      = "Radar"
	SheetBars       = "Bars"
	SheetEfficiency = "Efficiency"
)

// WriteWorkbook saves the radar rows, mirrored bar rows and efficiency points
// to an xlsx file at path. Empty series still produce a header row.
func WriteWorkbook(path string, pair compare.Pair, radar compare.RadarSeries, bars compare.BarSeries, points []statsapi.EfficiencyPoint) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet(SheetRadar)
	if err != nil {
		return eris.Wrap(err, "export: add radar sheet")
	}
	addStrings(sheet, "Metric", string(pair.A()), string(pair.B()))
	for _, row := range radar.Rows {
		r := sheet.AddRow()
		r.AddCell().SetString(string(row.Metric))
		r.AddCell().SetFloat(row.A)
		r.AddCell().SetFloat(row.B)
	}

	sheet, err = f.AddSheet(SheetBars)
	if err != nil {
		return eris.Wrap(err, "export: add bars sheet")
	}
	addStrings(sheet, "Metric", string(pair.A()), string(pair.B()), "Bar "+string(pair.A()), "Bar "+string(pair.B()))
	for _, row := range bars.Rows {
		r := sheet.AddRow()
		r.AddCell().SetString(string(row.Metric))
		r.AddCell().SetFloat(row.DisplayA)
		r.AddCell().SetFloat(row.DisplayB)
		r.AddCell().SetFloat(row.A)
		r.AddCell().SetFloat(row.B)
	}

	sheet, err = f.AddSheet(SheetEfficiency)
	if err != nil {
		return eris.Wrap(err, "export: add efficiency sheet")
	}
	addStrings(sheet, "Player", "MPG", "PPG", "FG%", "3P%")
	for _, pt := range points {
		r := sheet.AddRow()
		r.AddCell().SetString(pt.Player)
		r.AddCell().SetFloat(pt.MPG)
		r.AddCell().SetFloat(pt.PPG)
		r.AddCell().SetString(optional(pt.FGPct))
		r.AddCell().SetString(optional(pt.ThreePtPct))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

// ReadSheet returns every row of the named sheet as strings.
func ReadSheet(path, name string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open workbook")
	}

	sheet, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Errorf("export: sheet %q not found", name)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
