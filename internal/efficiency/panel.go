// Package efficiency holds the single-entity selection behind the
// minutes/points scatter panel.
package efficiency

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/statcompare/internal/metric"
	"github.com/sells-group/statcompare/internal/normalize"
	"github.com/sells-group/statcompare/internal/observe"
	"github.com/sells-group/statcompare/internal/pending"
	"github.com/sells-group/statcompare/pkg/statsapi"
)

const tokenKey = "efficiency"

const failureMessage = "failed to load player efficiency"

// Status is the panel's lifecycle state.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is the committed panel state. Points is only set when ready.
type State struct {
	Status  Status
	Entity  statsapi.EntityID
	Token   pending.Token
	Points  []statsapi.EfficiencyPoint
	Message string
	Cause   error
}

// Bounds is the observed axis domain of the scatter.
type Bounds struct {
	MinMPG float64 `json:"min_mpg" yaml:"min_mpg"`
	MaxMPG float64 `json:"max_mpg" yaml:"max_mpg"`
	MinPPG float64 `json:"min_ppg" yaml:"min_ppg"`
	MaxPPG float64 `json:"max_ppg" yaml:"max_ppg"`
}

// Average is the mean minutes and points across the listed players.
type Average struct {
	MPG float64 `json:"mpg" yaml:"mpg"`
	PPG float64 `json:"ppg" yaml:"ppg"`
}

// View is the scatter view model.
type View struct {
	Entity  statsapi.EntityID          `json:"entity" yaml:"entity"`
	Points  []statsapi.EfficiencyPoint `json:"points" yaml:"points"`
	Bounds  Bounds                     `json:"bounds" yaml:"bounds"`
	Average Average                    `json:"average" yaml:"average"`
}

// Panel owns the efficiency selection. It is independent of the comparison pair.
type Panel struct {
	client statsapi.Client

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	tokens pending.Tracker
	hub    observe.Hub[State]
	wg     sync.WaitGroup
}

// New creates an empty panel.
func New(client statsapi.Client) *Panel {
	return &Panel{
		client: client,
		state:  State{Status: StatusEmpty},
	}
}

// Select moves the panel to loading for entity and starts the fetch. An
// empty entity requests the unfiltered player list.
func (p *Panel) Select(ctx context.Context, entity statsapi.EntityID) {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	tok := p.tokens.Issue(tokenKey)
	fctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.state = State{Status: StatusLoading, Entity: entity, Token: tok}
	p.hub.Publish(p.state)

	p.wg.Add(1)
	go p.fetch(fctx, cancel, entity, tok)
	p.mu.Unlock()

	zap.L().Info("efficiency entity selected", zap.String("entity", string(entity)))
	p.hub.Flush()
}

// State returns the committed panel state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers fn for every committed transition.
func (p *Panel) Subscribe(fn func(State)) (unsubscribe func()) {
	return p.hub.Subscribe(fn)
}

// Wait blocks until every fetch started so far has settled.
func (p *Panel) Wait() {
	p.wg.Wait()
}

// View returns the scatter view model. It is empty unless the panel is ready.
func (p *Panel) View() View {
	st := p.State()
	if st.Status != StatusReady {
		return View{}
	}
	return BuildView(st.Entity, st.Points)
}

var axes = []metric.Metric{metric.MPG, metric.PPG}

// BuildView computes axis bounds and averages for points.
func BuildView(entity statsapi.EntityID, points []statsapi.EfficiencyPoint) View {
	v := View{Entity: entity, Points: points}
	if len(points) == 0 {
		return v
	}

	cohort := make([]map[metric.Metric]float64, len(points))
	for i, pt := range points {
		cohort[i] = map[metric.Metric]float64{metric.MPG: pt.MPG, metric.PPG: pt.PPG}
	}

	bounds := normalize.BaselineFrom(axes, cohort...)
	avg := normalize.Average(axes, cohort...)
	v.Bounds = Bounds{
		MinMPG: bounds[metric.MPG].Min,
		MaxMPG: bounds[metric.MPG].Max,
		MinPPG: bounds[metric.PPG].Min,
		MaxPPG: bounds[metric.PPG].Max,
	}
	v.Average = Average{MPG: avg[metric.MPG], PPG: avg[metric.PPG]}
	return v
}

func (p *Panel) fetch(ctx context.Context, cancel context.CancelFunc, entity statsapi.EntityID, tok pending.Token) {
	defer p.wg.Done()
	defer cancel()

	points, err := p.client.EfficiencyStats(ctx, entity)

	p.mu.Lock()
	if staleErr := p.tokens.Check(tokenKey, tok); staleErr != nil {
		p.mu.Unlock()
		zap.L().Debug("dropping efficiency response",
			zap.String("entity", string(entity)),
			zap.Uint64("token", uint64(tok)),
			zap.Error(staleErr),
		)
		return
	}

	if err != nil {
		p.state = State{
			Status:  StatusError,
			Entity:  entity,
			Token:   tok,
			Message: failureMessage,
			Cause:   eris.Wrapf(err, "efficiency: load %s", entity),
		}
		zap.L().Warn("efficiency panel failed",
			zap.String("entity", string(entity)),
			zap.Error(err),
		)
	} else {
		p.state = State{Status: StatusReady, Entity: entity, Token: tok, Points: points}
	}
	p.hub.Publish(p.state)
	p.mu.Unlock()

	p.hub.Flush()
}
