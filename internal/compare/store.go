// Package compare holds the pair of entities under comparison and the radar
// and bar views derived from it.
package compare

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/internal/normalize"
	"github.com/sells-group/statcompare/internal/observe"
	"github.com/sells-group/statcompare/internal/pending"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

// ViewKind identifies one of the views fed by the shared pair.
type ViewKind string

const (
	RadarView ViewKind = "radar"
	BarView   ViewKind = "bar"
)

var viewKinds = []ViewKind{RadarView, BarView}

// Status is a view's lifecycle state.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Pair is the ordered pair under comparison. Both sides may name the same entity.
type Pair [2]statsapi.EntityID

// A returns the first entity.
func (p Pair) A() statsapi.EntityID { return p[0] }

// B returns the second entity.
func (p Pair) B() statsapi.EntityID { return p[1] }

// ViewState is the committed state of one view. Snapshot and normalized
// fields are only set when Status is StatusReady.
type ViewState struct {
	Kind        ViewKind
	Status      Status
	Pair        Pair
	Token       pending.Token
	SnapshotA   *statsapi.Snapshot
	SnapshotB   *statsapi.Snapshot
	NormalizedA normalize.Normalized
	NormalizedB normalize.Normalized
	Message     string
	Cause       error
}

// Event is published after every committed view transition.
type Event struct {
	View  ViewKind
	State ViewState
}

// PairSelector is the single mutation path for the compared pair.
type PairSelector interface {
	SetPair(ctx context.Context, a, b statsapi.EntityID)
}

// Option configures a Store.
type Option func(*Store)

// WithBaseline sets the cohort baseline used to scale bar view values.
func WithBaseline(b normalize.Baseline) Option {
	return func(s *Store) {
		s.baseline = b
	}
}

// WithRadarOrder overrides the radar axis order.
func WithRadarOrder(order []metric.Metric) Option {
	return func(s *Store) {
		s.radarOrder = order
	}
}

// WithBarOrder overrides the bar chart row order.
func WithBarOrder(order []metric.Metric) Option {
	return func(s *Store) {
		s.barOrder = order
	}
}

// Store owns the comparison pair. Every change goes through SetPair or
// SetEntityAt; a response is committed only if its token is still the
// latest issued for its view.
type Store struct {
	client     statsapi.Client
	baseline   normalize.Baseline
	radarOrder []metric.Metric
	barOrder   []metric.Metric

	mu      sync.Mutex
	pair    Pair
	hasPair bool
	views   map[ViewKind]ViewState
	cancels map[ViewKind]context.CancelFunc
	tokens  pending.Tracker
	hub     observe.Hub[Event]
	wg      sync.WaitGroup
}

var _ PairSelector = (*Store)(nil)

// New creates a Store with both views empty.
func New(client statsapi.Client, opts ...Option) *Store {
	s := &Store{
		client:     client,
		baseline:   normalize.Baseline(metric.DefaultCatalog().Scales()),
		radarOrder: metric.RadarOrder(),
		barOrder:   metric.CompareOrder(),
		views:      make(map[ViewKind]ViewState, len(viewKinds)),
		cancels:    make(map[ViewKind]context.CancelFunc, len(viewKinds)),
	}
	for _, kind := range viewKinds {
		s.views[kind] = ViewState{Kind: kind, Status: StatusEmpty}
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetPair replaces the pair, moves both views to loading and starts their
// fetches. It does not wait for them; use Wait or Subscribe.
func (s *Store) SetPair(ctx context.Context, a, b statsapi.EntityID) {
	pair := Pair{a, b}

	s.mu.Lock()
	s.pair = pair
	s.hasPair = true

	for _, kind := range viewKinds {
		if cancel := s.cancels[kind]; cancel != nil {
			cancel()
		}
		tok := s.tokens.Issue(string(kind))
		fctx, cancel := context.WithCancel(ctx)
		s.cancels[kind] = cancel

		st := ViewState{Kind: kind, Status: StatusLoading, Pair: pair, Token: tok}
		s.views[kind] = st
		s.hub.Publish(Event{View: kind, State: st})

		s.wg.Add(1)
		go s.fetch(fctx, cancel, kind, pair, tok)
	}
	s.mu.Unlock()

	zap.L().Info("comparison pair set",
		zap.String("a", string(a)),
		zap.String("b", string(b)),
	)
	s.hub.Flush()
}

// SetEntityAt replaces one side of the pair and refetches. With no pair yet,
// the other side defaults to the same entity.
func (s *Store) SetEntityAt(ctx context.Context, index int, entity statsapi.EntityID) error {
	if index != 0 && index != 1 {
		return statsapi.NewValidationError("index", eris.Errorf("compare: pair index %d out of range", index))
	}

	s.mu.Lock()
	pair := s.pair
	if !s.hasPair {
		pair = Pair{entity, entity}
	}
	s.mu.Unlock()

	pair[index] = entity
	s.SetPair(ctx, pair[0], pair[1])
	return nil
}

// Pair returns the current pair and whether one has been set.
func (s *Store) Pair() (Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair, s.hasPair
}

// View returns the committed state of kind.
func (s *Store) View(kind ViewKind) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.views[kind]
}

// Subscribe registers fn for every committed transition.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// Wait blocks until every fetch started so far has settled. It must not be
// called concurrently with SetPair.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) fetch(ctx context.Context, cancel context.CancelFunc, kind ViewKind, pair Pair, tok pending.Token) {
	defer s.wg.Done()
	defer cancel()

	var (
		st  ViewState
		err error
	)
	switch kind {
	case RadarView:
		st, err = s.loadRadar(ctx, pair)
	case BarView:
		st, err = s.loadBar(ctx, pair)
	}

	s.mu.Lock()
	if staleErr := s.tokens.Check(string(kind), tok); staleErr != nil {
		s.mu.Unlock()
		zap.L().Debug("dropping comparison response",
			zap.String("view", string(kind)),
			zap.Uint64("token", uint64(tok)),
			zap.Error(staleErr),
		)
		return
	}

	st.Kind = kind
	st.Pair = pair
	st.Token = tok
	if err != nil {
		// Previous ready data is discarded, never shown under an error.
		st = ViewState{
			Kind:    kind,
			Status:  StatusError,
			Pair:    pair,
			Token:   tok,
			Message: failureMessage(kind),
			Cause:   err,
		}
		zap.L().Warn("comparison view failed",
			zap.String("view", string(kind)),
			zap.String("a", string(pair.A())),
			zap.String("b", string(pair.B())),
			zap.Error(err),
		)
	} else {
		st.Status = StatusReady
	}
	s.views[kind] = st
	s.hub.Publish(Event{View: kind, State: st})
	s.mu.Unlock()

	s.hub.Flush()
}

func (s *Store) loadRadar(ctx context.Context, pair Pair) (ViewState, error) {
	var snapA, snapB *statsapi.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapA, err = s.client.RadarStats(gctx, pair.A())
		return err
	})
	g.Go(func() error {
		var err error
		snapB, err = s.client.RadarStats(gctx, pair.B())
		return err
	})
	if err := g.Wait(); err != nil {
		return ViewState{}, eris.Wrap(err, "compare: load radar view")
	}
	if snapA == nil || snapB == nil {
		return ViewState{}, statsapi.NewValidationError("radar", eris.New("compare: radar snapshot missing"))
	}

	return ViewState{
		SnapshotA:   snapA,
		SnapshotB:   snapB,
		NormalizedA: normalize.PassThrough(snapA.Values, s.radarOrder),
		NormalizedB: normalize.PassThrough(snapB.Values, s.radarOrder),
	}, nil
}

func (s *Store) loadBar(ctx context.Context, pair Pair) (ViewState, error) {
	cmp, err := s.client.CompareStats(ctx, pair.A(), pair.B())
	if err != nil {
		return ViewState{}, eris.Wrap(err, "compare: load bar view")
	}
	if cmp == nil {
		return ViewState{}, statsapi.NewValidationError("compare", eris.New("compare: comparison missing"))
	}

	a, b := cmp.A, cmp.B
	return ViewState{
		SnapshotA:   &a,
		SnapshotB:   &b,
		NormalizedA: normalize.Scale(a.Values, s.baseline, s.barOrder),
		NormalizedB: normalize.Scale(b.Values, s.baseline, s.barOrder),
	}, nil
}

func failureMessage(kind ViewKind) string {
	if kind == RadarView {
		return "failed to load radar stats"
	}
	return "failed to load comparison"
}
