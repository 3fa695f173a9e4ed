package model

import "time"

// TimeBucket is one interval of a fully populated series. The interval is
// half-open: [Start, End).
type TimeBucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`
}

type ProvinceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DistrictCount carries its owning province so the presentation layer can
// cascade drill-downs without re-scanning records. Province is empty when no
// record supplied a consistent parent.
type DistrictCount struct {
	Name     string `json:"name"`
	Province string `json:"province,omitempty"`
	Count    int    `json:"count"`
}

type SectorCount struct {
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
	Province string `json:"province,omitempty"`
	Count    int    `json:"count"`
}

type GeoSummary struct {
	Provinces []ProvinceCount `json:"provinces"`
	Districts []DistrictCount `json:"districts"`
	Sectors   []SectorCount   `json:"sectors"`
}

type CategoryResolutionStat struct {
	Category               string  `json:"category"`
	SampleCount            int     `json:"sample_count"`
	AverageResolutionHours float64 `json:"average_resolution_hours"`
}

// SLASummary rates are nil when their denominator is zero; 0 always means a
// measured zero, never "no data".
type SLASummary struct {
	EligibleCount           int                      `json:"eligible_count"`
	CompliantCount          int                      `json:"compliant_count"`
	ComplianceRate          *float64                 `json:"compliance_rate"`
	OverdueCount            int                      `json:"overdue_count"`
	OverduePercentage       *float64                 `json:"overdue_percentage"`
	CategoryResolutionTimes []CategoryResolutionStat `json:"category_resolution_times"`
}

// SectionError marks an aggregator that failed inside one aggregate call.
// The matching bundle section is left nil while the others stay usable.
type SectionError struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

type MetricsBundle struct {
	TimeSeries   map[Granularity][]TimeBucket `json:"time_series"`
	Geographic   *GeoSummary                  `json:"geographic"`
	SLA          *SLASummary                  `json:"sla"`
	Errors       []SectionError               `json:"errors,omitempty"`
	GeneratedFor time.Time                    `json:"generated_for"`
}
