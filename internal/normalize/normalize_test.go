package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statcompare/internal/metric"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in_range", 42.5, 42.5},
		{"lower_edge", 0, 0},
		{"upper_edge", 100, 100},
		{"above", 104.2, 100},
		{"below", -3, 0},
		{"nan", math.NaN(), 0},
		{"pos_inf", math.Inf(1), 0},
		{"neg_inf", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.in))
		})
	}
}

func TestPassThrough_ClampsAndFillsAbsent(t *testing.T) {
	order := metric.RadarOrder()
	in := map[metric.Metric]float64{
		metric.Points:  80.1,
		metric.ThreePT: 104.2,
		metric.Blocks:  -1,
		metric.Steals:  math.NaN(),
	}

	got := PassThrough(in, order)

	require.Len(t, got, len(order))
	assert.Equal(t, 80.1, got[metric.Points])
	assert.Equal(t, 100.0, got[metric.ThreePT])
	assert.Equal(t, 0.0, got[metric.Blocks])
	assert.Equal(t, 0.0, got[metric.Steals])
	assert.Equal(t, 0.0, got[metric.Rebounds])
	for m, v := range got {
		assert.False(t, math.IsNaN(v), "metric %s is NaN", m)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestScale(t *testing.T) {
	order := []metric.Metric{metric.PPG, metric.RPG, metric.APG, metric.FGPct}
	baseline := Baseline{
		metric.PPG: {Min: 0, Max: 40},
		metric.RPG: {Min: 2, Max: 12},
		metric.APG: {Min: 5, Max: 5},
	}
	got := Scale(map[metric.Metric]float64{
		metric.PPG:   20,
		metric.RPG:   30,
		metric.APG:   4,
		metric.FGPct: 47.5,
	}, baseline, order)

	assert.InDelta(t, 50.0, got[metric.PPG], 1e-9)
	assert.Equal(t, 100.0, got[metric.RPG])
	assert.Equal(t, 0.0, got[metric.APG], "degenerate range scales to 0")
	assert.InDelta(t, 47.5, got[metric.FGPct], 1e-9, "no baseline entry passes through")

	empty := Scale(nil, baseline, order)
	for _, m := range order {
		assert.Equal(t, 0.0, empty[m])
	}
}

func TestMirror(t *testing.T) {
	order := metric.CompareOrder()
	a := map[metric.Metric]float64{metric.PPG: 20, metric.RPG: 4.5, metric.TOPG: math.NaN()}
	b := map[metric.Metric]float64{metric.PPG: 10, metric.APG: 3}

	rows := Mirror(a, b, order)

	require.Len(t, rows, len(order))
	for i, row := range rows {
		assert.Equal(t, order[i], row.Metric)
		assert.Equal(t, -row.DisplayA, row.A, "A mirrors its display value")
		assert.Equal(t, row.DisplayB, row.B)
		assert.False(t, math.Signbit(row.A) && row.A == 0, "no negative zero")
	}
	assert.Equal(t, BarRow{Metric: metric.PPG, A: -20, B: 10, DisplayA: 20, DisplayB: 10}, rows[0])
	assert.Equal(t, BarRow{Metric: metric.APG, A: 0, B: 3, DisplayA: 0, DisplayB: 3}, rows[2])
	assert.Equal(t, BarRow{Metric: metric.TOPG}, rows[5])
}

func TestBaselineFromAndAverage(t *testing.T) {
	order := []metric.Metric{metric.PPG, metric.RPG, metric.APG}
	cohort := []map[metric.Metric]float64{
		{metric.PPG: 10, metric.RPG: 4},
		{metric.PPG: 20, metric.RPG: math.NaN()},
		{metric.PPG: 30, metric.RPG: 8},
	}

	baseline := BaselineFrom(order, cohort...)
	assert.Equal(t, metric.Range{Min: 10, Max: 30}, baseline[metric.PPG])
	assert.Equal(t, metric.Range{Min: 4, Max: 8}, baseline[metric.RPG])
	assert.NotContains(t, baseline, metric.APG)

	avg := Average(order, cohort...)
	assert.InDelta(t, 20.0, avg[metric.PPG], 1e-9)
	assert.InDelta(t, 6.0, avg[metric.RPG], 1e-9)
	assert.NotContains(t, avg, metric.APG)

	assert.Empty(t, BaselineFrom(order))
}
