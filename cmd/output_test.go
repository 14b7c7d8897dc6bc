package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statcompare/internal/compare"
	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/internal/normalize"
)

func TestRenderBars_NegativeValues(t *testing.T) {
	series := compare.BarSeries{
		LabelA: "A",
		LabelB: "B",
		Rows: normalize.Mirror(
			map[metric.Metric]float64{metric.PPG: -12, metric.TOPG: 2},
			map[metric.Metric]float64{metric.PPG: 3, metric.TOPG: -1},
			[]metric.Metric{metric.PPG, metric.TOPG},
		),
	}

	var buf bytes.Buffer
	require.NotPanics(t, func() { renderBars(&buf, series) })

	out := buf.String()
	assert.Contains(t, out, "-12")
	assert.Contains(t, out, strings.Repeat("█", barWidth))
	assert.NotContains(t, out, strings.Repeat("█", barWidth+1))
}

func TestBarCells(t *testing.T) {
	tests := []struct {
		name    string
		v, peak float64
		want    int
	}{
		{"zero peak", 5, 0, 0},
		{"half", 5, 10, barWidth / 2},
		{"negative", -10, 10, barWidth},
		{"beyond peak", 30, 10, barWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, barCells(tt.v, tt.peak))
		})
	}
}
