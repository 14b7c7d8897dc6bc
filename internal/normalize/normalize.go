// Package normalize maps raw statistic values onto the shared 0-100
// comparison scale and builds the mirrored bar rows.
package normalize

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sells-group/statcompare/internal/metric"
)

// Lower and upper bounds of the comparison scale.
const (
	ScaleMin = 0.0
	ScaleMax = 100.0
)

// Baseline is the cohort reference span for each metric.
type Baseline map[metric.Metric]metric.Range

// Normalized is a snapshot rescaled to [0,100]. Values are never NaN.
type Normalized map[metric.Metric]float64

// BarRow is one metric of the mirrored bar chart. A is negated so the first
// entity extends left of the axis; DisplayA and DisplayB keep the unsigned
// values for labels.
type BarRow struct {
	Metric   metric.Metric `json:"metric" yaml:"metric"`
	A        float64       `json:"a" yaml:"a"`
	B        float64       `json:"b" yaml:"b"`
	DisplayA float64       `json:"display_a" yaml:"display_a"`
	DisplayB float64       `json:"display_b" yaml:"display_b"`
}

// Finite returns v, or 0 for NaN and infinities.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Clamp forces v into [0,100]; NaN and infinities become 0.
func Clamp(v float64) float64 {
	v = Finite(v)
	switch {
	case v < ScaleMin:
		return ScaleMin
	case v > ScaleMax:
		return ScaleMax
	}
	return v
}

// PassThrough accepts values the backend already normalized. Out-of-range
// values are clamped rather than rejected; absent metrics become 0.
func PassThrough(values map[metric.Metric]float64, order []metric.Metric) Normalized {
	out := make(Normalized, len(order))
	for _, m := range order {
		out[m] = Clamp(values[m])
	}
	return out
}

// Scale places raw values on the 0-100 scale relative to baseline. Metrics
// missing from baseline are treated as already normalized.
func Scale(values map[metric.Metric]float64, baseline Baseline, order []metric.Metric) Normalized {
	out := make(Normalized, len(order))
	for _, m := range order {
		v, ok := values[m]
		if !ok {
			out[m] = 0
			continue
		}
		r, ok := baseline[m]
		if !ok {
			out[m] = Clamp(v)
			continue
		}
		out[m] = scaleOne(v, r)
	}
	return out
}

func scaleOne(v float64, r metric.Range) float64 {
	span := r.Max - r.Min
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	return Clamp((Finite(v) - r.Min) / span * ScaleMax)
}

// Mirror builds the diverging bar rows in order.
func Mirror(a, b map[metric.Metric]float64, order []metric.Metric) []BarRow {
	rows := make([]BarRow, 0, len(order))
	for _, m := range order {
		va := Finite(a[m])
		vb := Finite(b[m])
		rows = append(rows, BarRow{
			Metric:   m,
			A:        negate(va),
			B:        vb,
			DisplayA: va,
			DisplayB: vb,
		})
	}
	return rows
}

// negate avoids producing -0 for zero values.
func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}

// BaselineFrom computes the observed min/max of each metric across a cohort.
// Metrics no member reports are left out.
func BaselineFrom(order []metric.Metric, cohort ...map[metric.Metric]float64) Baseline {
	out := make(Baseline, len(order))
	for _, m := range order {
		vals := present(m, cohort)
		if len(vals) == 0 {
			continue
		}
		out[m] = metric.Range{Min: floats.Min(vals), Max: floats.Max(vals)}
	}
	return out
}

// Average returns the per-metric mean across a cohort, used as a virtual
// "conference average" entity. Metrics no member reports are left out.
func Average(order []metric.Metric, cohort ...map[metric.Metric]float64) map[metric.Metric]float64 {
	out := make(map[metric.Metric]float64, len(order))
	for _, m := range order {
		vals := present(m, cohort)
		if len(vals) == 0 {
			continue
		}
		out[m] = stat.Mean(vals, nil)
	}
	return out
}

func present(m metric.Metric, cohort []map[metric.Metric]float64) []float64 {
	vals := make([]float64, 0, len(cohort))
	for _, snap := range cohort {
		v, ok := snap[m]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}
