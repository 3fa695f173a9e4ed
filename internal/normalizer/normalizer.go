// Package normalizer coerces raw report and collection-job rows into the
// canonical record shape the aggregators consume. A malformed field degrades
// to nil and the record is kept; only an unusable batch is fatal.
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"opsmetrics-service/internal/model"
)

// ValidationError means the whole input collection is unusable, not that any
// single record is bad.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record batch: %s", e.Reason)
}

// Timestamp layouts accepted from upstream, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts the raw batch into canonical records. Records are never
// dropped for bad fields; a nil batch is the one fatal condition.
func Normalize(raw []model.RawRecord) ([]model.NormalizedRecord, error) {
	if raw == nil {
		return nil, &ValidationError{Reason: "record collection is nil"}
	}

	records := make([]model.NormalizedRecord, 0, len(raw))
	for _, r := range raw {
		records = append(records, normalizeOne(r))
	}
	return records, nil
}

func normalizeOne(raw model.RawRecord) model.NormalizedRecord {
	rec := model.NormalizedRecord{
		ID:          strings.TrimSpace(raw.ID),
		Kind:        parseKind(raw.Kind),
		Status:      model.Status(strings.ToLower(strings.TrimSpace(raw.Status))),
		Severity:    parseSeverity(raw.Severity),
		Category:    strings.TrimSpace(raw.Category),
		CreatedAt:   parseInstant(raw.CreatedAt),
		UpdatedAt:   parseInstant(raw.UpdatedAt),
		OccurredAt:  parseInstant(raw.OccurredAt),
		ScheduledAt: parseInstant(raw.ScheduledAt),
		Province:    cleanPlace(raw.Province),
		District:    cleanPlace(raw.District),
		Sector:      cleanPlace(raw.Sector),
	}

	// An assignment without a usable timestamp cannot anchor SLA math, so it
	// is treated as no assignment at all.
	if assignedAt := parseInstant(raw.AssignedAt); assignedAt != nil {
		rec.Assignment = &model.Assignment{
			AssignedAt: *assignedAt,
			AssigneeID: strings.TrimSpace(raw.AssigneeID),
		}
	}

	return rec
}

func parseKind(raw string) model.RecordKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "collection", "collection_job":
		return model.KindCollection
	default:
		return model.KindReport
	}
}

func parseSeverity(raw string) model.Severity {
	switch model.Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case model.SeverityLow:
		return model.SeverityLow
	case model.SeverityMedium:
		return model.SeverityMedium
	case model.SeverityHigh:
		return model.SeverityHigh
	default:
		return ""
	}
}

func parseInstant(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}

func cleanPlace(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
