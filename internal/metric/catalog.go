package metric

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Range is the observed or assumed span of a metric across a cohort.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Catalog holds the scale bounds for the comparison bar metrics. Radar values
// arrive already on the 0-100 scale and need none.
type Catalog struct {
	Compare map[Metric]Range
}

// Scales returns the comparison bounds. The returned map is a copy.
func (c *Catalog) Scales() map[Metric]Range {
	out := make(map[Metric]Range, len(c.Compare))
	for k, v := range c.Compare {
		out[k] = v
	}
	return out
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err) // embedded file is covered by tests
	}
	return c
}

// LoadCatalog reads a catalog file. An empty path yields the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "metric: read catalog %s", path)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog with a top-level "catalog" key.
func ParseCatalog(data []byte) (*Catalog, error) {
	var wrapper struct {
		Catalog struct {
			Compare map[string]Range `yaml:"compare"`
		} `yaml:"catalog"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "metric: parse catalog")
	}

	compare, err := convertScales(wrapper.Catalog.Compare)
	if err != nil {
		return nil, err
	}
	return &Catalog{Compare: compare}, nil
}

func convertScales(in map[string]Range) (map[Metric]Range, error) {
	out := make(map[Metric]Range, len(in))
	for key, r := range in {
		m, ok := Parse(key)
		if !ok {
			return nil, eris.Errorf("metric: unknown metric %q in catalog", key)
		}
		if r.Max <= r.Min {
			return nil, eris.Errorf("metric: %s has empty range [%g, %g]", key, r.Min, r.Max)
		}
		out[m] = r
	}
	return out, nil
}
