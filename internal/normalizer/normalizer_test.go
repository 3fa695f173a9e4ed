package normalizer

import (
	"errors"
	"testing"
	"time"

	"opsmetrics-service/internal/model"
)

func TestNormalizeNilBatch(t *testing.T) {
	_, err := Normalize(nil)
	if err == nil {
		t.Fatalf("expected error for nil batch")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestNormalizeEmptyBatch(t *testing.T) {
	records, err := Normalize([]model.RawRecord{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty result, got %d records", len(records))
	}
}

func TestNormalizeTimestamps(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{"rfc3339", "2024-06-01T08:15:00Z", timePtr(time.Date(2024, 6, 1, 8, 15, 0, 0, time.UTC))},
		{"postgres text", "2024-06-01 08:15:00+00", timePtr(time.Date(2024, 6, 1, 8, 15, 0, 0, time.FixedZone("", 0)))},
		{"date only", "2024-06-01", timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))},
		{"garbage", "not-a-date", nil},
		{"empty", "", nil},
		{"whitespace", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Normalize([]model.RawRecord{{ID: "r1", CreatedAt: tt.raw}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := records[0].CreatedAt
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil timestamp, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %v, got nil", tt.want)
			}
			if !got.Equal(*tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNormalizeKeepsMalformedRecords(t *testing.T) {
	records, err := Normalize([]model.RawRecord{
		{ID: "bad", CreatedAt: "???", UpdatedAt: "???", Province: "  "},
		{ID: "good", CreatedAt: "2024-06-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both records retained, got %d", len(records))
	}
	if records[0].CreatedAt != nil || records[0].UpdatedAt != nil {
		t.Fatalf("expected nil timestamps on malformed record")
	}
	if records[1].CreatedAt == nil {
		t.Fatalf("expected parsed timestamp on good record")
	}
}

func TestNormalizeGeography(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *string
	}{
		{"trimmed", "  Kigali City  ", strPtr("Kigali City")},
		{"empty", "", nil},
		{"all whitespace", "   \t", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Normalize([]model.RawRecord{{ID: "r1", Province: tt.raw}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := records[0].Province
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil province, got %q", *got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Fatalf("expected %q, got %v", *tt.want, got)
			}
		})
	}
}

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		raw  string
		want model.RecordKind
	}{
		{"report", model.KindReport},
		{"collection", model.KindCollection},
		{"COLLECTION_JOB", model.KindCollection},
		{"", model.KindReport},
		{"something else", model.KindReport},
	}

	for _, tt := range tests {
		records, err := Normalize([]model.RawRecord{{ID: "r1", Kind: tt.raw}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if records[0].Kind != tt.want {
			t.Fatalf("kind %q: expected %q, got %q", tt.raw, tt.want, records[0].Kind)
		}
	}
}

func TestNormalizeStatusAndSeverity(t *testing.T) {
	records, err := Normalize([]model.RawRecord{
		{ID: "r1", Status: " In_Progress ", Severity: "HIGH"},
		{ID: "r2", Severity: "critical"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Status != model.StatusInProgress {
		t.Fatalf("expected in_progress, got %q", records[0].Status)
	}
	if records[0].Severity != model.SeverityHigh {
		t.Fatalf("expected high severity, got %q", records[0].Severity)
	}
	if records[1].Severity != "" {
		t.Fatalf("expected unknown severity dropped, got %q", records[1].Severity)
	}
}

func TestNormalizeAssignment(t *testing.T) {
	records, err := Normalize([]model.RawRecord{
		{ID: "assigned", AssignedAt: "2024-06-01T09:00:00Z", AssigneeID: " worker-7 "},
		{ID: "unusable", AssignedAt: "not-a-date", AssigneeID: "worker-8"},
		{ID: "none"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if records[0].Assignment == nil {
		t.Fatalf("expected assignment on first record")
	}
	if records[0].Assignment.AssigneeID != "worker-7" {
		t.Fatalf("expected trimmed assignee id, got %q", records[0].Assignment.AssigneeID)
	}
	if records[1].Assignment != nil {
		t.Fatalf("assignment without usable timestamp must be dropped")
	}
	if records[2].Assignment != nil {
		t.Fatalf("expected nil assignment on bare record")
	}
}

func timePtr(t time.Time) *time.Time { return &t }
func strPtr(s string) *string        { return &s }
