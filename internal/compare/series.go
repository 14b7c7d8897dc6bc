package compare

import (
	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/internal/normalize"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

// RadarRow is one axis of the radar overlay.
type RadarRow struct {
	Metric metric.Metric `json:"metric" yaml:"metric"`
	A      float64       `json:"a" yaml:"a"`
	B      float64       `json:"b" yaml:"b"`
}

// RadarSeries is the radar overlay view model. LabelA and LabelB name the
// series; they may be equal when an entity is compared with itself.
type RadarSeries struct {
	LabelA statsapi.EntityID `json:"label_a" yaml:"label_a"`
	LabelB statsapi.EntityID `json:"label_b" yaml:"label_b"`
	Rows   []RadarRow        `json:"rows" yaml:"rows"`
}

// BarSeries is the mirrored bar chart view model.
type BarSeries struct {
	LabelA statsapi.EntityID  `json:"label_a" yaml:"label_a"`
	LabelB statsapi.EntityID  `json:"label_b" yaml:"label_b"`
	Rows   []normalize.BarRow `json:"rows" yaml:"rows"`
}

// RadarSeries returns the radar rows in canonical axis order. It is empty
// unless the radar view is ready.
func (s *Store) RadarSeries() RadarSeries {
	st := s.View(RadarView)
	if st.Status != StatusReady {
		return RadarSeries{}
	}

	rows := make([]RadarRow, 0, len(s.radarOrder))
	for _, m := range s.radarOrder {
		rows = append(rows, RadarRow{
			Metric: m,
			A:      st.NormalizedA[m],
			B:      st.NormalizedB[m],
		})
	}
	return RadarSeries{LabelA: st.Pair.A(), LabelB: st.Pair.B(), Rows: rows}
}

// BarSeries returns the mirrored rows built from raw comparison values. It is
// empty unless the bar view is ready.
func (s *Store) BarSeries() BarSeries {
	st := s.View(BarView)
	if st.Status != StatusReady || st.SnapshotA == nil || st.SnapshotB == nil {
		return BarSeries{}
	}
	return BarSeries{
		LabelA: st.Pair.A(),
		LabelB: st.Pair.B(),
		Rows:   normalize.Mirror(st.SnapshotA.Values, st.SnapshotB.Values, s.barOrder),
	}
}

// DefaultPair picks the initial pair from list. Each preferred entity is kept
// when the list contains it; a missing one is replaced by the list entry at
// the same position, or by the first entry when the list has only one.
func DefaultPair(list []statsapi.EntityID, preferred ...statsapi.EntityID) (Pair, bool) {
	if len(list) == 0 {
		return Pair{}, false
	}

	var pair Pair
	for i := range pair {
		if i < len(preferred) && contains(list, preferred[i]) {
			pair[i] = preferred[i]
			continue
		}
		pair[i] = list[min(i, len(list)-1)]
	}
	return pair, true
}

func contains(list []statsapi.EntityID, e statsapi.EntityID) bool {
	for _, v := range list {
		if v == e {
			return true
		}
	}
	return false
}
