package model

import "time"

type RecordKind string

const (
	KindReport     RecordKind = "report"
	KindCollection RecordKind = "collection"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Status string

// Report statuses.
const (
	StatusNew        Status = "new"
	StatusTriaged    Status = "triaged"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// Collection-job statuses. StatusInProgress is shared by both vocabularies.
const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
	StatusCancelled Status = "cancelled"
)

// RawRecord is the ingest shape handed to the normalizer. Timestamp fields
// arrive as text and may be empty or unparseable; geographic fields are
// free-form and may be blank or whitespace.
type RawRecord struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	Severity    string `json:"severity,omitempty"`
	Category    string `json:"category"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	OccurredAt  string `json:"occurred_at,omitempty"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	Province    string `json:"province,omitempty"`
	District    string `json:"district,omitempty"`
	Sector      string `json:"sector,omitempty"`
	AssignedAt  string `json:"assigned_at,omitempty"`
	AssigneeID  string `json:"assignee_id,omitempty"`
}

type Assignment struct {
	AssignedAt time.Time `json:"assigned_at"`
	AssigneeID string    `json:"assignee_id"`
}

// NormalizedRecord is the canonical record shape every aggregator consumes.
// Nil pointer fields mean the source value was absent or unusable, never zero.
type NormalizedRecord struct {
	ID          string      `json:"id"`
	Kind        RecordKind  `json:"kind"`
	Status      Status      `json:"status"`
	Severity    Severity    `json:"severity,omitempty"`
	Category    string      `json:"category"`
	CreatedAt   *time.Time  `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at"`
	OccurredAt  *time.Time  `json:"occurred_at"`
	ScheduledAt *time.Time  `json:"scheduled_at"`
	Province    *string     `json:"province"`
	District    *string     `json:"district"`
	Sector      *string     `json:"sector"`
	Assignment  *Assignment `json:"assignment"`
}

// EffectiveTimestamp picks the instant a record is charted at: the actual
// occurrence if known, else the scheduled instant, else creation time.
func (r NormalizedRecord) EffectiveTimestamp() *time.Time {
	if r.OccurredAt != nil {
		return r.OccurredAt
	}
	if r.ScheduledAt != nil {
		return r.ScheduledAt
	}
	return r.CreatedAt
}

// Resolved reports true for the terminal success status of the record's kind.
func (r NormalizedRecord) Resolved() bool {
	switch r.Kind {
	case KindCollection:
		return r.Status == StatusCompleted
	default:
		return r.Status == StatusResolved
	}
}

// Discarded reports true for statuses that remove a record from SLA tracking.
func (r NormalizedRecord) Discarded() bool {
	switch r.Kind {
	case KindCollection:
		return r.Status == StatusCancelled
	default:
		return r.Status == StatusRejected
	}
}
