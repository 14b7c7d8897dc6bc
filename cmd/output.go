package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/statcompare/internal/compare"
	"github.com/sells-group/statcompare/internal/efficiency"
	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// barWidth is the number of cells on each side of the mirrored bar axis.
const barWidth = 20

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case outputTable, outputJSON, outputYAML:
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported structured format %q", format)
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

// label title-cases a view or status name for headings.
func label(s string) string {
	return cases.Title(language.English).String(s)
}

func renderEntities(w io.Writer, entities []statsapi.EntityID) {
	t := newTable(w, "")
	t.AppendHeader(table.Row{"#", "Entity"})
	for i, e := range entities {
		t.AppendRow(table.Row{i + 1, e})
	}
	t.Render()
}

// renderSnapshot lists values in order, followed by any other columns the
// backend returned, sorted by name.
func renderSnapshot(w io.Writer, title string, snap *statsapi.Snapshot, order []metric.Metric) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Metric", "Value"})

	seen := make(map[metric.Metric]bool, len(order))
	for _, m := range order {
		seen[m] = true
		if v, ok := snap.Value(m); ok {
			t.AppendRow(table.Row{m, formatValue(v)})
		} else {
			t.AppendRow(table.Row{m, "-"})
		}
	}

	var extra []string
	for m := range snap.Values {
		if !seen[m] {
			extra = append(extra, string(m))
		}
	}
	sort.Strings(extra)
	for _, m := range extra {
		t.AppendRow(table.Row{m, formatValue(snap.Values[metric.Metric(m)])})
	}
	t.Render()
}

func renderRadar(w io.Writer, series compare.RadarSeries) {
	t := newTable(w, label(string(compare.RadarView)))
	t.AppendHeader(table.Row{"Metric", series.LabelA, series.LabelB})
	for _, row := range series.Rows {
		t.AppendRow(table.Row{row.Metric, formatValue(row.A), formatValue(row.B)})
	}
	t.Render()
}

func renderBars(w io.Writer, series compare.BarSeries) {
	var peak float64
	for _, row := range series.Rows {
		peak = math.Max(peak, math.Max(math.Abs(row.DisplayA), math.Abs(row.DisplayB)))
	}

	t := newTable(w, label(string(compare.BarView)))
	t.AppendHeader(table.Row{series.LabelA, "", "Metric", "", series.LabelB})
	for _, row := range series.Rows {
		t.AppendRow(table.Row{
			formatValue(row.DisplayA),
			leftBar(row.A, peak),
			row.Metric,
			rightBar(row.B, peak),
			formatValue(row.DisplayB),
		})
	}
	t.Render()
}

func renderViewError(w io.Writer, st compare.ViewState) {
	_, _ = fmt.Fprintf(w, "%s: %s\n", label(string(st.Kind)), st.Message)
}

func renderEfficiency(w io.Writer, view efficiency.View) {
	title := "Player Efficiency"
	if view.Entity != "" {
		title = string(view.Entity) + " " + title
	}

	t := newTable(w, title)
	t.AppendHeader(table.Row{"Player", "MPG", "PPG", "FG%", "3P%"})
	for _, pt := range view.Points {
		t.AppendRow(table.Row{pt.Player, formatValue(pt.MPG), formatValue(pt.PPG), optionalValue(pt.FGPct), optionalValue(pt.ThreePtPct)})
	}
	t.AppendFooter(table.Row{"Average", formatValue(view.Average.MPG), formatValue(view.Average.PPG), "", ""})
	t.Render()

	_, _ = fmt.Fprintf(w, "MPG %s..%s  PPG %s..%s\n",
		formatValue(view.Bounds.MinMPG), formatValue(view.Bounds.MaxMPG),
		formatValue(view.Bounds.MinPPG), formatValue(view.Bounds.MaxPPG),
	)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func optionalValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatValue(*v)
}

func barCells(v, peak float64) int {
	if peak <= 0 {
		return 0
	}
	n := int(math.Round(math.Abs(v) / peak * barWidth))
	return min(n, barWidth)
}

func leftBar(v, peak float64) string {
	n := barCells(v, peak)
	return strings.Repeat(" ", barWidth-n) + strings.Repeat("█", n)
}

func rightBar(v, peak float64) string {
	return strings.Repeat("█", barCells(v, peak))
}
