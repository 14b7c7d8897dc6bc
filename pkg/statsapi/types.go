package statsapi

import (
	"github.com/sells-group/statcompare/internal/metric"
)

// EntityID names a team or player. Equality is exact string match.
type EntityID string

// ConferenceAverage is the reserved entity backed by the conference-average
// radar endpoint rather than a real team.
const ConferenceAverage EntityID = "Conference Average"

const conferenceAverageSlug = "conference-average"

// IsConferenceAverage reports whether e names the virtual conference-average entity.
func IsConferenceAverage(e EntityID) bool {
	return e == ConferenceAverage || e == conferenceAverageSlug
}

// Snapshot is one entity's statistics as returned by the backend. Values
// that were absent or non-numeric on the wire are not present in Values.
type Snapshot struct {
	Entity   EntityID                  `json:"entity" yaml:"entity"`
	Values   map[metric.Metric]float64 `json:"values" yaml:"values"`
	ImageURL string                    `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// Value returns the value for m and whether it was present.
func (s *Snapshot) Value(m metric.Metric) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.Values[m]
	return v, ok
}

// Comparison holds both sides of a combined comparison call.
type Comparison struct {
	A Snapshot `json:"a" yaml:"a"`
	B Snapshot `json:"b" yaml:"b"`
}

// EfficiencyPoint is one player on the minutes/points scatter.
type EfficiencyPoint struct {
	Player     string   `json:"player" yaml:"player"`
	MPG        float64  `json:"mpg" yaml:"mpg"`
	PPG        float64  `json:"ppg" yaml:"ppg"`
	FGPct      *float64 `json:"fg_pct,omitempty" yaml:"fg_pct,omitempty"`
	ThreePtPct *float64 `json:"three_pt_pct,omitempty" yaml:"three_pt_pct,omitempty"`
	Image      string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// ChatRequest is the body for POST /chat.
type ChatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id,omitempty"`
}

// ChatReply is a decoded assistant turn.
type ChatReply struct {
	Response      string     `json:"response"`
	ThreadID      string     `json:"thread_id,omitempty"`
	RelevantTeams []EntityID `json:"relevant_teams,omitempty"`
	Path          string     `json:"path,omitempty"`
	Status        string     `json:"status,omitempty"`
}

// RelevantPair returns the two entities the assistant suggested comparing.
// ok is false unless exactly two were supplied.
func (r *ChatReply) RelevantPair() (a, b EntityID, ok bool) {
	if r == nil || len(r.RelevantTeams) != 2 {
		return "", "", false
	}
	return r.RelevantTeams[0], r.RelevantTeams[1], true
}
