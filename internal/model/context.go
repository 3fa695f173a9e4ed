package model

import "time"

type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func AllGranularities() []Granularity {
	return []Granularity{GranularityHour, GranularityDay, GranularityWeek, GranularityMonth}
}

func ParseGranularity(raw string) (Granularity, bool) {
	switch Granularity(raw) {
	case GranularityHour, GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(raw), true
	default:
		return "", false
	}
}

// GeoFilter is a single active path down the hierarchy. Empty fields are
// unset; setting a shallower level invalidates anything previously selected
// below it, which Normalize enforces.
type GeoFilter struct {
	Province string `json:"province,omitempty"`
	District string `json:"district,omitempty"`
	Sector   string `json:"sector,omitempty"`
}

// Normalize drops deeper selections that lack their parent so the filter is
// always one contiguous path.
func (f GeoFilter) Normalize() GeoFilter {
	if f.Province == "" {
		f.District = ""
	}
	if f.District == "" {
		f.Sector = ""
	}
	return f
}

// AggregationContext carries everything one aggregate call depends on; the
// engine holds no state of its own between calls.
type AggregationContext struct {
	Reference     time.Time     `json:"reference"`
	Filter        GeoFilter     `json:"filter"`
	Granularities []Granularity `json:"granularities"`
}

func (c AggregationContext) Normalize() AggregationContext {
	if c.Reference.IsZero() {
		c.Reference = time.Now()
	}
	if len(c.Granularities) == 0 {
		c.Granularities = AllGranularities()
	}
	c.Filter = c.Filter.Normalize()
	return c
}
