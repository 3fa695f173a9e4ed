// Package engine composes the normalizer and the three aggregators into one
// metrics bundle. The engine is stateless: every call takes a full record
// snapshot plus a context and computes a fresh result.
package engine

import (
	"fmt"
	"sync"

	"opsmetrics-service/internal/geo"
	"opsmetrics-service/internal/model"
	"opsmetrics-service/internal/normalizer"
	"opsmetrics-service/internal/sla"
	"opsmetrics-service/internal/timeseries"
)

const (
	SectionTimeSeries = "time_series"
	SectionGeographic = "geographic"
	SectionSLA        = "sla"
)

type Engine struct {
	analyzer *sla.Analyzer
}

func New(slaTargetHours int) *Engine {
	return &Engine{analyzer: sla.NewAnalyzer(slaTargetHours)}
}

// Aggregate normalizes the snapshot once, then runs the three aggregators in
// parallel over the shared read-only slice. A defect inside one aggregator is
// reported as a section error instead of failing the bundle; only an unusable
// batch aborts the call.
func (e *Engine) Aggregate(raw []model.RawRecord, aggCtx model.AggregationContext) (model.MetricsBundle, error) {
	aggCtx = aggCtx.Normalize()

	records, err := normalizer.Normalize(raw)
	if err != nil {
		return model.MetricsBundle{}, err
	}

	var (
		wg         sync.WaitGroup
		series     map[model.Granularity][]model.TimeBucket
		geoSummary *model.GeoSummary
		slaSummary *model.SLASummary

		seriesErr, geoErr, slaErr *model.SectionError
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		seriesErr = guard(SectionTimeSeries, func() error {
			out := make(map[model.Granularity][]model.TimeBucket, len(aggCtx.Granularities))
			for _, granularity := range aggCtx.Granularities {
				buckets, err := timeseries.Bucket(records, granularity, aggCtx.Reference)
				if err != nil {
					return err
				}
				out[granularity] = buckets
			}
			series = out
			return nil
		})
	}()
	go func() {
		defer wg.Done()
		geoErr = guard(SectionGeographic, func() error {
			summary := geo.Roll(records, aggCtx.Filter)
			geoSummary = &summary
			return nil
		})
	}()
	go func() {
		defer wg.Done()
		slaErr = guard(SectionSLA, func() error {
			summary := e.analyzer.Analyze(records, aggCtx.Reference)
			slaSummary = &summary
			return nil
		})
	}()
	wg.Wait()

	bundle := model.MetricsBundle{
		TimeSeries:   series,
		Geographic:   geoSummary,
		SLA:          slaSummary,
		GeneratedFor: aggCtx.Reference,
	}
	// Assembly order is fixed so identical inputs yield identical bundles no
	// matter which goroutine finishes first.
	for _, sectionErr := range []*model.SectionError{seriesErr, geoErr, slaErr} {
		if sectionErr != nil {
			bundle.Errors = append(bundle.Errors, *sectionErr)
		}
	}
	return bundle, nil
}

// guard runs one aggregator and converts a returned error or a panic into a
// section marker so one broken metric never blinds the whole dashboard.
func guard(section string, fn func() error) (marker *model.SectionError) {
	defer func() {
		if r := recover(); r != nil {
			marker = &model.SectionError{Section: section, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &model.SectionError{Section: section, Message: err.Error()}
	}
	return nil
}
