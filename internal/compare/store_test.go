package compare

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/internal/normalize"
	"github.com/sells-group/statcompare/pkg/statsapi"
	"github.com/sells-group/statcompare/pkg/statsapi/mocks"
)

func snap(entity string, values map[metric.Metric]float64) *statsapi.Snapshot {
	return &statsapi.Snapshot{Entity: statsapi.EntityID(entity), Values: values}
}

func comparison(a, b *statsapi.Snapshot) *statsapi.Comparison {
	return &statsapi.Comparison{A: *a, B: *b}
}

func expectPair(m *mocks.MockClient, a, b string, radarA, radarB, barA, barB map[metric.Metric]float64) {
	m.On("RadarStats", mock.Anything, statsapi.EntityID(a)).Return(snap(a, radarA), nil)
	if a != b {
		m.On("RadarStats", mock.Anything, statsapi.EntityID(b)).Return(snap(b, radarB), nil)
	}
	m.On("CompareStats", mock.Anything, statsapi.EntityID(a), statsapi.EntityID(b)).
		Return(comparison(snap(a, barA), snap(b, barB)), nil)
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := New(mocks.NewMockClient(t))

	_, ok := s.Pair()
	assert.False(t, ok)
	assert.Equal(t, StatusEmpty, s.View(RadarView).Status)
	assert.Equal(t, StatusEmpty, s.View(BarView).Status)
	assert.Empty(t, s.RadarSeries().Rows)
	assert.Empty(t, s.BarSeries().Rows)
}

func TestSetPairMirroredBars(t *testing.T) {
	client := mocks.NewMockClient(t)
	expectPair(client, "A", "B",
		map[metric.Metric]float64{metric.Points: 50},
		map[metric.Metric]float64{metric.Points: 40},
		map[metric.Metric]float64{metric.PPG: 20},
		map[metric.Metric]float64{metric.PPG: 10},
	)

	s := New(client)
	s.SetPair(context.Background(), "A", "B")
	s.Wait()

	bar := s.View(BarView)
	require.Equal(t, StatusReady, bar.Status)
	assert.Equal(t, Pair{"A", "B"}, bar.Pair)

	series := s.BarSeries()
	assert.Equal(t, statsapi.EntityID("A"), series.LabelA)
	assert.Equal(t, statsapi.EntityID("B"), series.LabelB)
	require.Len(t, series.Rows, len(metric.CompareOrder()))

	ppg := series.Rows[0]
	assert.Equal(t, metric.PPG, ppg.Metric)
	assert.Equal(t, -20.0, ppg.A)
	assert.Equal(t, 10.0, ppg.B)
	assert.Equal(t, 20.0, ppg.DisplayA)
	assert.Equal(t, 10.0, ppg.DisplayB)

	// Metrics neither side reported render as zero.
	for _, row := range series.Rows[1:] {
		assert.Zero(t, row.A, row.Metric)
		assert.Zero(t, row.B, row.Metric)
	}

	// Bar values are scaled against the default compare catalog (PPG 0..40).
	assert.InDelta(t, 50.0, bar.NormalizedA[metric.PPG], 1e-9)
	assert.InDelta(t, 25.0, bar.NormalizedB[metric.PPG], 1e-9)
}

func TestSetPairRadarSeries(t *testing.T) {
	client := mocks.NewMockClient(t)
	expectPair(client, "UCDavis", "UCIrvine",
		map[metric.Metric]float64{metric.Points: 80, metric.ThreePT: 104.2, metric.Blocks: -3},
		map[metric.Metric]float64{metric.Points: 60, metric.Rebounds: 55},
		nil, nil,
	)

	s := New(client)
	s.SetPair(context.Background(), "UCDavis", "UCIrvine")
	s.Wait()

	series := s.RadarSeries()
	require.Len(t, series.Rows, len(metric.RadarOrder()))
	for i, m := range metric.RadarOrder() {
		assert.Equal(t, m, series.Rows[i].Metric)
	}

	byMetric := make(map[metric.Metric]RadarRow, len(series.Rows))
	for _, row := range series.Rows {
		byMetric[row.Metric] = row
	}
	assert.Equal(t, 80.0, byMetric[metric.Points].A)
	assert.Equal(t, 60.0, byMetric[metric.Points].B)
	assert.Equal(t, 100.0, byMetric[metric.ThreePT].A, "clamped to scale max")
	assert.Equal(t, 0.0, byMetric[metric.Blocks].A, "clamped to scale min")
	assert.Equal(t, 55.0, byMetric[metric.Rebounds].B)
	assert.Equal(t, 0.0, byMetric[metric.Assists].A, "absent is zero")
}

func TestSelfComparison(t *testing.T) {
	client := mocks.NewMockClient(t)
	values := map[metric.Metric]float64{metric.Points: 70, metric.PPG: 12}
	expectPair(client, "UCDavis", "UCDavis", values, values, values, values)

	s := New(client)
	s.SetPair(context.Background(), "UCDavis", "UCDavis")
	s.Wait()

	assert.Equal(t, StatusReady, s.View(RadarView).Status)
	assert.Equal(t, StatusReady, s.View(BarView).Status)

	radar := s.RadarSeries()
	assert.Equal(t, radar.LabelA, radar.LabelB)
	require.NotEmpty(t, radar.Rows)
	assert.Equal(t, radar.Rows[0].A, radar.Rows[0].B)

	bar := s.BarSeries()
	require.NotEmpty(t, bar.Rows)
	assert.Equal(t, -12.0, bar.Rows[0].A)
	assert.Equal(t, 12.0, bar.Rows[0].B)
}

func TestStaleResponseDropped(t *testing.T) {
	client := mocks.NewMockClient(t)
	release := make(chan struct{})
	entered := make(chan struct{})

	old := map[metric.Metric]float64{metric.PPG: 99, metric.Points: 99}
	fresh := map[metric.Metric]float64{metric.PPG: 5, metric.Points: 5}

	client.On("RadarStats", mock.Anything, statsapi.EntityID("X")).Return(snap("X", old), nil)
	client.On("RadarStats", mock.Anything, statsapi.EntityID("Y")).Return(snap("Y", old), nil)
	client.On("CompareStats", mock.Anything, statsapi.EntityID("X"), statsapi.EntityID("Y")).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(comparison(snap("X", old), snap("Y", old)), nil).
		Once()
	expectPair(client, "P", "Q", fresh, fresh, fresh, fresh)

	s := New(client)
	s.SetPair(context.Background(), "X", "Y")
	<-entered
	s.SetPair(context.Background(), "P", "Q")

	close(release)
	s.Wait()

	pair, ok := s.Pair()
	require.True(t, ok)
	assert.Equal(t, Pair{"P", "Q"}, pair)

	bar := s.View(BarView)
	require.Equal(t, StatusReady, bar.Status)
	assert.Equal(t, Pair{"P", "Q"}, bar.Pair)
	assert.Equal(t, statsapi.EntityID("P"), bar.SnapshotA.Entity)
	assert.Equal(t, 5.0, bar.SnapshotA.Values[metric.PPG])

	radar := s.View(RadarView)
	require.Equal(t, StatusReady, radar.Status)
	assert.Equal(t, Pair{"P", "Q"}, radar.Pair)
	assert.Equal(t, 5.0, radar.NormalizedA[metric.Points])
}

func TestStaleResponseNotPublished(t *testing.T) {
	client := mocks.NewMockClient(t)
	release := make(chan struct{})
	entered := make(chan struct{})

	client.On("RadarStats", mock.Anything, mock.Anything).Return(snap("any", nil), nil)
	client.On("CompareStats", mock.Anything, statsapi.EntityID("X"), statsapi.EntityID("Y")).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil, statsapi.NewTransportError(errors.New("late failure"), 502)).
		Once()
	client.On("CompareStats", mock.Anything, statsapi.EntityID("P"), statsapi.EntityID("Q")).
		Return(comparison(snap("P", nil), snap("Q", nil)), nil)

	s := New(client)

	var (
		mu     sync.Mutex
		states []ViewState
	)
	s.Subscribe(func(e Event) {
		if e.View != BarView {
			return
		}
		mu.Lock()
		states = append(states, e.State)
		mu.Unlock()
	})

	s.SetPair(context.Background(), "X", "Y")
	<-entered
	s.SetPair(context.Background(), "P", "Q")
	close(release)
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	for _, st := range states {
		assert.NotEqual(t, StatusError, st.Status, "stale failure must not surface")
	}
	require.NotEmpty(t, states)
	last := states[len(states)-1]
	assert.Equal(t, StatusReady, last.Status)
	assert.Equal(t, Pair{"P", "Q"}, last.Pair)
}

func TestErrorDiscardsReadyData(t *testing.T) {
	client := mocks.NewMockClient(t)
	values := map[metric.Metric]float64{metric.Points: 50, metric.PPG: 10}
	expectPair(client, "A", "B", values, values, values, values)

	cause := statsapi.NewTransportError(errors.New("boom"), 500)
	client.On("RadarStats", mock.Anything, statsapi.EntityID("C")).Return(nil, cause)
	client.On("CompareStats", mock.Anything, statsapi.EntityID("A"), statsapi.EntityID("C")).Return(nil, cause)

	s := New(client)
	s.SetPair(context.Background(), "A", "B")
	s.Wait()
	require.Equal(t, StatusReady, s.View(RadarView).Status)

	require.NoError(t, s.SetEntityAt(context.Background(), 1, "C"))
	s.Wait()

	radar := s.View(RadarView)
	assert.Equal(t, StatusError, radar.Status)
	assert.Equal(t, "failed to load radar stats", radar.Message)
	assert.Nil(t, radar.SnapshotA)
	assert.Nil(t, radar.NormalizedA)
	assert.True(t, statsapi.IsTransport(radar.Cause))
	assert.Equal(t, 500, statsapi.StatusCode(radar.Cause))

	bar := s.View(BarView)
	assert.Equal(t, StatusError, bar.Status)
	assert.Equal(t, "failed to load comparison", bar.Message)
	assert.Nil(t, bar.SnapshotB)

	assert.Empty(t, s.RadarSeries().Rows)
	assert.Empty(t, s.BarSeries().Rows)
}

func TestSetEntityAt(t *testing.T) {
	client := mocks.NewMockClient(t)
	values := map[metric.Metric]float64{metric.PPG: 1}
	expectPair(client, "A", "A", values, values, values, values)
	expectPair(client, "A", "B", values, values, values, values)
	expectPair(client, "C", "B", values, values, values, values)

	s := New(client)
	ctx := context.Background()

	require.NoError(t, s.SetEntityAt(ctx, 0, "A"))
	s.Wait()
	pair, _ := s.Pair()
	assert.Equal(t, Pair{"A", "A"}, pair)

	require.NoError(t, s.SetEntityAt(ctx, 1, "B"))
	s.Wait()
	pair, _ = s.Pair()
	assert.Equal(t, Pair{"A", "B"}, pair)

	require.NoError(t, s.SetEntityAt(ctx, 0, "C"))
	s.Wait()
	pair, _ = s.Pair()
	assert.Equal(t, Pair{"C", "B"}, pair)
}

func TestSetEntityAtRejectsBadIndex(t *testing.T) {
	s := New(mocks.NewMockClient(t))

	for _, idx := range []int{-1, 2, 7} {
		err := s.SetEntityAt(context.Background(), idx, "A")
		require.Error(t, err)
		assert.True(t, statsapi.IsValidation(err))
	}

	_, ok := s.Pair()
	assert.False(t, ok)
	assert.Equal(t, StatusEmpty, s.View(BarView).Status)
}

func TestSubscribeOrdering(t *testing.T) {
	client := mocks.NewMockClient(t)
	values := map[metric.Metric]float64{metric.PPG: 3}
	expectPair(client, "A", "B", values, values, values, values)

	s := New(client)

	var (
		mu     sync.Mutex
		events = map[ViewKind][]Status{}
	)
	unsubscribe := s.Subscribe(func(e Event) {
		mu.Lock()
		events[e.View] = append(events[e.View], e.State.Status)
		mu.Unlock()
	})

	s.SetPair(context.Background(), "A", "B")
	s.Wait()
	unsubscribe()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Status{StatusLoading, StatusReady}, events[RadarView])
	assert.Equal(t, []Status{StatusLoading, StatusReady}, events[BarView])
}

func TestWithBaselineAndOrders(t *testing.T) {
	client := mocks.NewMockClient(t)
	expectPair(client, "A", "B",
		map[metric.Metric]float64{metric.Steals: 9},
		map[metric.Metric]float64{metric.Steals: 4},
		map[metric.Metric]float64{metric.RPG: 15},
		map[metric.Metric]float64{metric.RPG: 5},
	)

	s := New(client,
		WithBaseline(normalize.Baseline{metric.RPG: {Min: 5, Max: 15}}),
		WithRadarOrder([]metric.Metric{metric.Steals}),
		WithBarOrder([]metric.Metric{metric.RPG}),
	)
	s.SetPair(context.Background(), "A", "B")
	s.Wait()

	radar := s.RadarSeries()
	require.Len(t, radar.Rows, 1)
	assert.Equal(t, RadarRow{Metric: metric.Steals, A: 9, B: 4}, radar.Rows[0])

	bar := s.View(BarView)
	assert.Equal(t, 100.0, bar.NormalizedA[metric.RPG])
	assert.Equal(t, 0.0, bar.NormalizedB[metric.RPG])

	rows := s.BarSeries().Rows
	require.Len(t, rows, 1)
	assert.Equal(t, -15.0, rows[0].A)
	assert.Equal(t, 5.0, rows[0].B)
}

func TestDefaultPair(t *testing.T) {
	tests := []struct {
		name      string
		list      []statsapi.EntityID
		preferred []statsapi.EntityID
		want      Pair
		wantOK    bool
	}{
		{
			name:      "preferred present",
			list:      []statsapi.EntityID{"A", "UCDavis", "C", "UCIrvine"},
			preferred: []statsapi.EntityID{"UCDavis", "UCIrvine"},
			want:      Pair{"UCDavis", "UCIrvine"},
			wantOK:    true,
		},
		{
			name:      "preferred missing",
			list:      []statsapi.EntityID{"A", "B", "C"},
			preferred: []statsapi.EntityID{"UCDavis", "UCIrvine"},
			want:      Pair{"A", "B"},
			wantOK:    true,
		},
		{
			name:      "first missing",
			list:      []statsapi.EntityID{"A", "B", "UCIrvine"},
			preferred: []statsapi.EntityID{"UCDavis", "UCIrvine"},
			want:      Pair{"A", "UCIrvine"},
			wantOK:    true,
		},
		{
			name:      "second missing",
			list:      []statsapi.EntityID{"A", "UCDavis", "C"},
			preferred: []statsapi.EntityID{"UCDavis", "UCIrvine"},
			want:      Pair{"UCDavis", "UCDavis"},
			wantOK:    true,
		},
		{
			name:      "single entry keeps present preference",
			list:      []statsapi.EntityID{"A"},
			preferred: []statsapi.EntityID{"X", "A"},
			want:      Pair{"A", "A"},
			wantOK:    true,
		},
		{
			name:   "single entry",
			list:   []statsapi.EntityID{"A"},
			want:   Pair{"A", "A"},
			wantOK: true,
		},
		{
			name:      "empty list",
			preferred: []statsapi.EntityID{"UCDavis", "UCIrvine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DefaultPair(tt.list, tt.preferred...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
