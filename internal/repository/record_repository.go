package repository

import (
	"context"

	"gorm.io/gorm"

	"opsmetrics-service/internal/model"
)

// RecordRepository reads the raw report and collection-job snapshot from the
// system of record. Timestamps are fetched as text on purpose: upstream owns
// the columns and the normalizer is the single place that interprets them.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Snapshot returns every report and collection job as raw records. Missing
// tables yield an empty snapshot rather than an error so a partially
// provisioned environment still serves a dashboard.
func (r *RecordRepository) Snapshot(ctx context.Context) ([]model.RawRecord, error) {
	var records []model.RawRecord

	if r.relationExists(ctx, "reports") {
		var rows []model.RawRecord
		query := r.db.WithContext(ctx).
			Table("reports rp").
			Select(`rp.id::text AS id,
				'report' AS kind,
				COALESCE(rp.status, '') AS status,
				COALESCE(rp.severity, '') AS severity,
				COALESCE(rp.category, '') AS category,
				COALESCE(rp.created_at::text, '') AS created_at,
				COALESCE(rp.updated_at::text, '') AS updated_at,
				COALESCE(rp.occurred_at::text, '') AS occurred_at,
				'' AS scheduled_at,
				COALESCE(rp.province, '') AS province,
				COALESCE(rp.district, '') AS district,
				COALESCE(rp.sector, '') AS sector,
				COALESCE(rp.assigned_at::text, '') AS assigned_at,
				COALESCE(rp.assignee_id::text, '') AS assignee_id`).
			Order("rp.created_at ASC")
		if err := query.Scan(&rows).Error; err != nil {
			return nil, err
		}
		records = append(records, rows...)
	}

	if r.relationExists(ctx, "collection_jobs") {
		var rows []model.RawRecord
		query := r.db.WithContext(ctx).
			Table("collection_jobs cj").
			Select(`cj.id::text AS id,
				'collection' AS kind,
				COALESCE(cj.status, '') AS status,
				'' AS severity,
				COALESCE(cj.waste_type, '') AS category,
				COALESCE(cj.created_at::text, '') AS created_at,
				COALESCE(cj.updated_at::text, '') AS updated_at,
				COALESCE(cj.completed_at::text, '') AS occurred_at,
				COALESCE(cj.scheduled_at::text, '') AS scheduled_at,
				COALESCE(cj.province, '') AS province,
				COALESCE(cj.district, '') AS district,
				COALESCE(cj.sector, '') AS sector,
				COALESCE(cj.assigned_at::text, '') AS assigned_at,
				COALESCE(cj.assignee_id::text, '') AS assignee_id`).
			Order("cj.created_at ASC")
		if err := query.Scan(&rows).Error; err != nil {
			return nil, err
		}
		records = append(records, rows...)
	}

	if records == nil {
		records = []model.RawRecord{}
	}
	return records, nil
}

func (r *RecordRepository) relationExists(ctx context.Context, name string) bool {
	var exists bool
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXISTS (
			SELECT 1
			FROM pg_catalog.pg_class c
			JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
			WHERE c.relname = ? AND c.relkind IN ('r','m','v') AND n.nspname = 'public'
		)`, name).
		Scan(&exists).Error
	if err != nil {
		return false
	}
	return exists
}
