package service

import (
	"context"
	"errors"
	"fmt"

	"opsmetrics-service/internal/engine"
	"opsmetrics-service/internal/model"
)

var ErrPermissionDenied = errors.New("permission denied")

// RecordSource is the read-only system-of-record adapter the service pulls
// snapshots from.
type RecordSource interface {
	Snapshot(ctx context.Context) ([]model.RawRecord, error)
}

type MetricsService struct {
	records RecordSource
	engine  *engine.Engine
}

func NewMetricsService(records RecordSource, eng *engine.Engine) *MetricsService {
	return &MetricsService{records: records, engine: eng}
}

// GetDashboard computes the full metrics bundle for the caller's filter
// context. Citizens only see their own submissions elsewhere; operational
// metrics are staff-only.
func (s *MetricsService) GetDashboard(ctx context.Context, principal model.Principal, aggCtx model.AggregationContext) (*model.MetricsBundle, error) {
	if principal.IsCitizen() {
		return nil, ErrPermissionDenied
	}

	raw, err := s.records.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	bundle, err := s.engine.Aggregate(raw, aggCtx)
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (s *MetricsService) GetTimeSeries(ctx context.Context, principal model.Principal, aggCtx model.AggregationContext) (map[model.Granularity][]model.TimeBucket, error) {
	bundle, err := s.GetDashboard(ctx, principal, aggCtx)
	if err != nil {
		return nil, err
	}
	if err := sectionError(bundle, engine.SectionTimeSeries); err != nil {
		return nil, err
	}
	return bundle.TimeSeries, nil
}

func (s *MetricsService) GetGeographic(ctx context.Context, principal model.Principal, aggCtx model.AggregationContext) (*model.GeoSummary, error) {
	bundle, err := s.GetDashboard(ctx, principal, aggCtx)
	if err != nil {
		return nil, err
	}
	if err := sectionError(bundle, engine.SectionGeographic); err != nil {
		return nil, err
	}
	return bundle.Geographic, nil
}

func (s *MetricsService) GetSLA(ctx context.Context, principal model.Principal, aggCtx model.AggregationContext) (*model.SLASummary, error) {
	bundle, err := s.GetDashboard(ctx, principal, aggCtx)
	if err != nil {
		return nil, err
	}
	if err := sectionError(bundle, engine.SectionSLA); err != nil {
		return nil, err
	}
	return bundle.SLA, nil
}

func sectionError(bundle *model.MetricsBundle, section string) error {
	for _, marker := range bundle.Errors {
		if marker.Section == section {
			return fmt.Errorf("%s aggregation failed: %s", marker.Section, marker.Message)
		}
	}
	return nil
}
