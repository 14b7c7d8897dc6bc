// Package statstest serves an in-memory stand-in for the statistics and
// assistant backend. Tests mount it on an httptest.Server.
package statstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// ChatTurn records a POST /chat body.
type ChatTurn struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id,omitempty"`
}

// ChatReply is a canned POST /chat response.
type ChatReply struct {
	Status int
	Body   map[string]any
}

// Backend holds the fixture data served by the fake routes. Mutate fields
// before the first request, or under Lock/Unlock afterwards.
type Backend struct {
	mu sync.Mutex

	Players           []string
	Compare           map[string]map[string]any
	Radar             map[string]map[string]float64
	ConferenceAverage map[string]float64
	RawTeam           map[string]map[string]any
	Efficiency        map[string][]map[string]any
	ChatReplies       []ChatReply

	// FailPaths forces the given request paths to answer with the status.
	FailPaths map[string]int

	hits  map[string]int
	turns []ChatTurn
}

// New returns a backend seeded with a small conference. Compare and Players
// hold player rows only, as the real /players route lists players; tests that
// send team names to /compare_stats seed those rows themselves.
func New() *Backend {
	return &Backend{
		Players: []string{"ty johnson", "sevilla, connor", "elijah pepper"},
		Compare: map[string]map[string]any{
			"ty johnson":      {"PPG": 14.2, "RPG": 3.1, "APG": 2.4, "SPG": 1.1, "BPG": 0.2, "TOPG": 1.9, "imageUrl": "https://img.example/ty.png"},
			"sevilla, connor": {"PPG": "9.8", "RPG": 5.6, "APG": 1.2, "SPG": 0.6, "BPG": 0.8, "TOPG": "N/A"},
			"elijah pepper":   {"PPG": 22.5, "RPG": 4.9, "APG": 2.8, "SPG": 1.4, "BPG": 0.3, "TOPG": 2.6},
		},
		Radar: map[string]map[string]float64{
			"UCDavis":    {"Points": 80.1, "FG%": 45.2, "3PT": 62.5, "Rebounds": 81.3, "Assists": 55.0, "Steals": 58.3, "Blocks": 30.0},
			"UCIrvine":   {"Points": 84.4, "FG%": 47.9, "3PT": 58.1, "Rebounds": 88.0, "Assists": 61.2, "Steals": 66.7, "Blocks": 41.0},
			"CalPolySLO": {"Points": 71.0, "FG%": 41.1, "3PT": 104.2, "Rebounds": 75.5, "Assists": 49.6, "Steals": 50.0, "Blocks": 22.0},
		},
		ConferenceAverage: map[string]float64{"Points": 78.0, "FG%": 44.0, "3PT": 60.0, "Rebounds": 80.0, "Assists": 54.0, "Steals": 57.0, "Blocks": 31.0},
		RawTeam: map[string]map[string]any{
			"UCDavis": {"team": "UCDavis", "AVG_PTS": 72.1, "FG_PCT": 0.452, "TOT_GP": 31, "TOT_3PT": 232},
		},
		Efficiency: map[string][]map[string]any{
			"UCDavis": {
				{"player": "TY Johnson", "mpg": 31.2, "ppg": 14.2, "fg_pct": 0.471, "three_pt_pct": 0.362, "image": "https://img.example/ty.png"},
				{"player": "Connor Sevilla", "mpg": 24.5, "ppg": 9.8},
			},
			"": {
				{"player": "TY Johnson", "mpg": 31.2, "ppg": 14.2},
			},
		},
		FailPaths: map[string]int{},
		hits:      map[string]int{},
	}
}

// Lock guards fixture mutation after the server has started.
func (b *Backend) Lock() { b.mu.Lock() }

// Unlock releases Lock.
func (b *Backend) Unlock() { b.mu.Unlock() }

// Hits returns how many requests reached path.
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// ChatTurns returns every chat request received, in order.
func (b *Backend) ChatTurns() []ChatTurn {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ChatTurn(nil), b.turns...)
}

// Start mounts the backend on a test server closed at the end of the test.
func (b *Backend) Start(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)
	return srv
}

// Router returns the chi router serving every backend route.
func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Get("/players", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.Players)
	})
	r.Get("/compare_stats", b.compare)
	r.Get("/compare", b.compare)
	r.Get("/api/radar-chart/conference-average", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"normalized_stats": b.ConferenceAverage, "comparison": "conference_average"})
	})
	r.Get("/api/radar-chart/{team}", func(w http.ResponseWriter, r *http.Request) {
		team := param(r, "team")
		stats, ok := b.Radar[team]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Team not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"team": team, "normalized_stats": stats})
	})
	r.Get("/api/raw-team-stats/{team}", func(w http.ResponseWriter, r *http.Request) {
		team := param(r, "team")
		stats, ok := b.RawTeam[team]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Team not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"team": team, "raw_stats": stats})
	})
	r.Get("/api/player-efficiency", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.Efficiency[""])
	})
	r.Get("/api/player-efficiency/{team}", func(w http.ResponseWriter, r *http.Request) {
		rows, ok := b.Efficiency[param(r, "team")]
		if !ok {
			rows = []map[string]any{}
		}
		writeJSON(w, http.StatusOK, rows)
	})
	r.Post("/chat", b.chat)

	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.URL.Path]++
		status, fail := b.FailPaths[r.URL.Path]
		b.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]string{"error": "forced failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) compare(w http.ResponseWriter, r *http.Request) {
	p1 := r.URL.Query().Get("player1")
	p2 := r.URL.Query().Get("player2")
	if p1 == "" || p2 == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing player names"})
		return
	}
	s1, ok1 := b.Compare[p1]
	s2, ok2 := b.Compare[p2]
	if !ok1 || !ok2 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Player not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"player1": s1, "player2": s2})
}

func (b *Backend) chat(w http.ResponseWriter, r *http.Request) {
	var turn ChatTurn
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	b.mu.Lock()
	b.turns = append(b.turns, turn)
	var reply *ChatReply
	if len(b.ChatReplies) > 0 {
		reply = &b.ChatReplies[0]
		b.ChatReplies = b.ChatReplies[1:]
	}
	b.mu.Unlock()

	if reply != nil {
		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, reply.Body)
		return
	}

	threadID := turn.ThreadID
	if threadID == "" {
		threadID = "thread-1"
	}
	writeJSON(w, http.StatusOK, map[string]any{"response": "echo: " + turn.Message, "thread_id": threadID})
}

func param(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
