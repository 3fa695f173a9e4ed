// Package sla classifies records against the assignment SLA and computes
// per-category resolution statistics. Status transitions are owned by the
// upstream system of record; this package only reads statuses.
package sla

import (
	"sort"
	"time"

	"opsmetrics-service/internal/model"
)

// DefaultTargetHours is the fixed response target: seven days from
// assignment.
const DefaultTargetHours = 168

type Analyzer struct {
	target time.Duration
}

func NewAnalyzer(targetHours int) *Analyzer {
	if targetHours <= 0 {
		targetHours = DefaultTargetHours
	}
	return &Analyzer{target: time.Duration(targetHours) * time.Hour}
}

// Outcome is the per-record classification. Compliant is nil when compliance
// cannot be determined (no assignment, discarded status, or a resolved record
// with no update timestamp to measure against).
type Outcome struct {
	Eligible  bool    `json:"eligible"`
	Compliant *bool   `json:"compliant"`
	Overdue   bool    `json:"overdue"`
	AgeHours  float64 `json:"age_hours"`
}

// Classify evaluates one record at the given instant. Only records with an
// assignment timestamp and a non-discarded status are SLA-eligible; resolved
// records are never overdue.
func (a *Analyzer) Classify(rec model.NormalizedRecord, now time.Time) Outcome {
	outcome := Outcome{AgeHours: ageHours(rec, now)}

	if rec.Assignment == nil || rec.Discarded() {
		return outcome
	}
	outcome.Eligible = true

	if rec.Resolved() {
		if rec.UpdatedAt == nil {
			return outcome
		}
		compliant := rec.UpdatedAt.Sub(rec.Assignment.AssignedAt) <= a.target
		outcome.Compliant = &compliant
		return outcome
	}

	// Open record: currently compliant means not yet past target.
	overdue := now.Sub(rec.Assignment.AssignedAt) > a.target
	outcome.Overdue = overdue
	compliant := !overdue
	outcome.Compliant = &compliant
	return outcome
}

// Analyze classifies the whole snapshot. Rates are nil when no record could
// enter the denominator.
func (a *Analyzer) Analyze(records []model.NormalizedRecord, now time.Time) model.SLASummary {
	summary := model.SLASummary{}

	evaluable := 0
	for _, rec := range records {
		outcome := a.Classify(rec, now)
		if !outcome.Eligible {
			continue
		}
		summary.EligibleCount++
		if outcome.Overdue {
			summary.OverdueCount++
		}
		if outcome.Compliant != nil {
			evaluable++
			if *outcome.Compliant {
				summary.CompliantCount++
			}
		}
	}

	summary.ComplianceRate = percentage(summary.CompliantCount, evaluable)
	summary.OverduePercentage = percentage(summary.OverdueCount, summary.EligibleCount)
	summary.CategoryResolutionTimes = resolutionStats(records)

	return summary
}

// resolutionStats averages created-to-updated hours per category over
// resolved records carrying both timestamps. Categories with no qualifying
// sample are omitted, never reported as zero.
func resolutionStats(records []model.NormalizedRecord) []model.CategoryResolutionStat {
	type tally struct {
		samples int
		hours   float64
	}
	byCategory := make(map[string]*tally)

	for _, rec := range records {
		if !rec.Resolved() || rec.Category == "" {
			continue
		}
		if rec.CreatedAt == nil || rec.UpdatedAt == nil {
			continue
		}
		elapsed := rec.UpdatedAt.Sub(*rec.CreatedAt)
		if elapsed < 0 {
			continue
		}
		t := byCategory[rec.Category]
		if t == nil {
			t = &tally{}
			byCategory[rec.Category] = t
		}
		t.samples++
		t.hours += elapsed.Hours()
	}

	stats := make([]model.CategoryResolutionStat, 0, len(byCategory))
	for category, t := range byCategory {
		stats = append(stats, model.CategoryResolutionStat{
			Category:               category,
			SampleCount:            t.samples,
			AverageResolutionHours: t.hours / float64(t.samples),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Category < stats[j].Category
	})
	return stats
}

func ageHours(rec model.NormalizedRecord, now time.Time) float64 {
	switch {
	case rec.Assignment != nil:
		return now.Sub(rec.Assignment.AssignedAt).Hours()
	case rec.CreatedAt != nil:
		return now.Sub(*rec.CreatedAt).Hours()
	default:
		return 0
	}
}

func percentage(numerator, denominator int) *float64 {
	if denominator == 0 {
		return nil
	}
	value := float64(numerator) / float64(denominator) * 100
	return &value
}
