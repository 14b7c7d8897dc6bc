// Package statsapi is a typed client for the statistics and assistant backend.
package statsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:5001"

// Client issues the backend calls. It holds no comparison state; every call
// honours ctx as its cancellation signal and never retries.
type Client interface {
	ListEntities(ctx context.Context) ([]EntityID, error)
	RawStats(ctx context.Context, entity EntityID) (*Snapshot, error)
	CompareStats(ctx context.Context, a, b EntityID) (*Comparison, error)
	CompareLegacy(ctx context.Context, a, b EntityID) (*Comparison, error)
	RadarStats(ctx context.Context, entity EntityID) (*Snapshot, error)
	EfficiencyStats(ctx context.Context, entity EntityID) ([]EfficiencyPoint, error)
	ChatTurn(ctx context.Context, req ChatRequest) (*ChatReply, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default backend base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the transport-level request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests. A limit of zero disables throttling.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *httpClient) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	flights singleflight.Group
}

// NewClient creates a backend client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) ListEntities(ctx context.Context) ([]EntityID, error) {
	body, err := c.get(ctx, "/players", nil)
	if err != nil {
		return nil, eris.Wrap(err, "statsapi: list entities")
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, NewValidationError("players", eris.Wrap(err, "statsapi: unmarshal entity list"))
	}

	out := make([]EntityID, 0, len(names))
	for _, n := range names {
		out = append(out, EntityID(n))
	}
	return out, nil
}

func (c *httpClient) RawStats(ctx context.Context, entity EntityID) (*Snapshot, error) {
	if entity == "" {
		return nil, NewValidationError("entity", eris.New("statsapi: entity is required"))
	}

	body, err := c.get(ctx, "/api/raw-team-stats/"+url.PathEscape(string(entity)), nil)
	if err != nil {
		return nil, eris.Wrapf(err, "statsapi: raw stats %s", entity)
	}

	var resp struct {
		RawStats map[string]json.RawMessage `json:"raw_stats"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewValidationError("raw_stats", eris.Wrap(err, "statsapi: unmarshal raw stats"))
	}
	if resp.RawStats == nil {
		return nil, NewValidationError("raw_stats", eris.Errorf("statsapi: raw stats for %s missing", entity))
	}

	snap := decodeSnapshot(entity, resp.RawStats)
	return &snap, nil
}

func (c *httpClient) CompareStats(ctx context.Context, a, b EntityID) (*Comparison, error) {
	return c.compare(ctx, "/compare_stats", a, b)
}

func (c *httpClient) CompareLegacy(ctx context.Context, a, b EntityID) (*Comparison, error) {
	return c.compare(ctx, "/compare", a, b)
}

func (c *httpClient) compare(ctx context.Context, path string, a, b EntityID) (*Comparison, error) {
	if a == "" || b == "" {
		return nil, NewValidationError("player", eris.New("statsapi: both entities are required"))
	}

	q := url.Values{}
	q.Set("player1", string(a))
	q.Set("player2", string(b))

	body, err := c.get(ctx, path, q)
	if err != nil {
		return nil, eris.Wrapf(err, "statsapi: compare %s vs %s", a, b)
	}

	var resp struct {
		Player1 map[string]json.RawMessage `json:"player1"`
		Player2 map[string]json.RawMessage `json:"player2"`
		Error   string                     `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewValidationError("compare", eris.Wrap(err, "statsapi: unmarshal comparison"))
	}
	if resp.Error != "" {
		return nil, NewValidationError("compare", eris.Errorf("statsapi: backend reported %q", resp.Error))
	}
	if resp.Player1 == nil || resp.Player2 == nil {
		return nil, NewValidationError("compare", eris.New("statsapi: comparison missing a side"))
	}

	return &Comparison{
		A: decodeSnapshot(a, resp.Player1),
		B: decodeSnapshot(b, resp.Player2),
	}, nil
}

func (c *httpClient) RadarStats(ctx context.Context, entity EntityID) (*Snapshot, error) {
	if entity == "" {
		return nil, NewValidationError("entity", eris.New("statsapi: entity is required"))
	}

	segment := url.PathEscape(string(entity))
	if IsConferenceAverage(entity) {
		segment = conferenceAverageSlug
	}

	body, err := c.get(ctx, "/api/radar-chart/"+segment, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "statsapi: radar stats %s", entity)
	}

	var resp struct {
		NormalizedStats map[string]json.RawMessage `json:"normalized_stats"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewValidationError("normalized_stats", eris.Wrap(err, "statsapi: unmarshal radar stats"))
	}
	if resp.NormalizedStats == nil {
		return nil, NewValidationError("normalized_stats", eris.Errorf("statsapi: radar stats for %s missing", entity))
	}

	snap := decodeSnapshot(entity, resp.NormalizedStats)
	return &snap, nil
}

func (c *httpClient) EfficiencyStats(ctx context.Context, entity EntityID) ([]EfficiencyPoint, error) {
	path := "/api/player-efficiency"
	if entity != "" {
		path += "/" + url.PathEscape(string(entity))
	}

	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "statsapi: efficiency stats %s", entity)
	}

	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, NewValidationError("player-efficiency", eris.Wrap(err, "statsapi: unmarshal efficiency stats"))
	}

	out := make([]EfficiencyPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, decodeEfficiencyPoint(row))
	}
	return out, nil
}

func (c *httpClient) ChatTurn(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, NewValidationError("message", eris.New("statsapi: message is empty"))
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "statsapi: marshal chat request")
	}

	body, err := c.do(ctx, http.MethodPost, c.baseURL+"/chat", payload)
	if err != nil {
		return nil, eris.Wrap(err, "statsapi: chat turn")
	}

	var reply ChatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, NewValidationError("chat", eris.Wrap(err, "statsapi: unmarshal chat reply"))
	}
	return &reply, nil
}

// get issues a GET, collapsing identical in-flight requests into one network
// call. Each caller still returns as soon as its own ctx is done.
func (c *httpClient) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewTransportError(eris.Wrap(err, "statsapi: request abandoned"), 0)
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	ch := c.flights.DoChan(u, func() (any, error) {
		return c.do(context.WithoutCancel(ctx), http.MethodGet, u, nil)
	})

	select {
	case <-ctx.Done():
		return nil, NewTransportError(eris.Wrap(ctx.Err(), "statsapi: request abandoned"), 0)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *httpClient) do(ctx context.Context, method, u string, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewTransportError(eris.Wrap(err, "statsapi: rate limit wait"), 0)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, eris.Wrap(err, "statsapi: create request")
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewTransportError(eris.Wrap(err, "statsapi: send request"), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError(eris.Wrap(err, "statsapi: read response"), resp.StatusCode)
	}

	zap.L().Debug("statsapi request",
		zap.String("method", method),
		zap.String("url", u),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewTransportError(
			eris.Errorf("statsapi: unexpected status %d: %s", resp.StatusCode, truncate(string(body), 256)),
			resp.StatusCode,
		)
	}

	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
