// Package metric defines the statistic tags shared by the gateway, the
// normalizer and the view models, and the canonical order in which each
// panel lays them out.
package metric

import "strings"

// Metric is a statistic tag as it appears on the wire.
type Metric string

// Player per-game metrics.
const (
	PPG      Metric = "PPG"
	RPG      Metric = "RPG"
	APG      Metric = "APG"
	SPG      Metric = "SPG"
	BPG      Metric = "BPG"
	TOPG     Metric = "TOPG"
	MPG      Metric = "MPG"
	FGPct    Metric = "FG%"
	ThreePct Metric = "3P%"
)

// Team radar metrics, keyed the way the radar endpoint reports them.
const (
	Points   Metric = "Points"
	ThreePT  Metric = "3PT"
	Rebounds Metric = "Rebounds"
	Assists  Metric = "Assists"
	Steals   Metric = "Steals"
	Blocks   Metric = "Blocks"
)

var (
	compareOrder = []Metric{PPG, RPG, APG, SPG, BPG, TOPG}
	playerOrder  = []Metric{PPG, RPG, APG, SPG, BPG, TOPG, MPG, FGPct, ThreePct}
	radarOrder   = []Metric{Points, FGPct, ThreePT, Rebounds, Assists, Steals, Blocks}
)

var aliases = map[string]Metric{
	"3PT%":   ThreePct,
	"3P_PCT": ThreePct,
	"FG_PCT": FGPct,
}

var known = func() map[Metric]struct{} {
	m := make(map[Metric]struct{})
	for _, list := range [][]Metric{playerOrder, radarOrder} {
		for _, k := range list {
			m[k] = struct{}{}
		}
	}
	return m
}()

// CompareOrder returns the mirrored bar chart axis order.
func CompareOrder() []Metric {
	return append([]Metric(nil), compareOrder...)
}

// PlayerOrder returns every player metric in display order.
func PlayerOrder() []Metric {
	return append([]Metric(nil), playerOrder...)
}

// RadarOrder returns the radar chart axis order.
func RadarOrder() []Metric {
	return append([]Metric(nil), radarOrder...)
}

// Parse maps a wire key onto a known Metric.
func Parse(s string) (Metric, bool) {
	s = strings.TrimSpace(s)
	if _, ok := known[Metric(s)]; ok {
		return Metric(s), true
	}
	if m, ok := aliases[strings.ToUpper(s)]; ok {
		return m, true
	}
	return "", false
}
