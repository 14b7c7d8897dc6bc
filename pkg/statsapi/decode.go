package statsapi

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/sells-group/statcompare/internal/metric"
)

var imageKeys = []string{"imageUrl", "image_url", "image"}

// decodeSnapshot keeps every numeric field. Known metric spellings are
// canonicalised; other numeric columns are kept under their wire name.
func decodeSnapshot(entity EntityID, fields map[string]json.RawMessage) Snapshot {
	snap := Snapshot{
		Entity: entity,
		Values: make(map[metric.Metric]float64, len(fields)),
	}

	for key, raw := range fields {
		if isImageKey(key) {
			snap.ImageURL = parseString(raw)
			continue
		}
		v, ok := parseNumber(raw)
		if !ok {
			continue
		}
		m, known := metric.Parse(key)
		if !known {
			m = metric.Metric(key)
		}
		snap.Values[m] = v
	}
	return snap
}

func decodeEfficiencyPoint(fields map[string]json.RawMessage) EfficiencyPoint {
	p := EfficiencyPoint{
		Player: parseString(fields["player"]),
		Image:  parseString(fields["image"]),
	}
	p.MPG, _ = parseNumber(fields["mpg"])
	p.PPG, _ = parseNumber(fields["ppg"])
	if v, ok := parseNumber(fields["fg_pct"]); ok {
		p.FGPct = &v
	}
	if v, ok := parseNumber(fields["three_pt_pct"]); ok {
		p.ThreePtPct = &v
	}
	return p
}

func isImageKey(key string) bool {
	for _, k := range imageKeys {
		if key == k {
			return true
		}
	}
	return false
}

// parseNumber accepts JSON numbers and numeric strings such as "45.2%".
// null, "N/A", NaN and infinities report ok=false.
func parseNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var v float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		v = f
	} else if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
