package db

import (
	"fmt"

	"gorm.io/gorm"
)

// The upstream ticketing backend owns the reports and collection_jobs tables;
// this service only adds the read indexes its snapshot queries lean on, and
// only when the tables actually exist.
var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'reports') THEN
			CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at);
			CREATE INDEX IF NOT EXISTS idx_reports_status ON reports (status);
			CREATE INDEX IF NOT EXISTS idx_reports_geo ON reports (province, district, sector);
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'collection_jobs') THEN
			CREATE INDEX IF NOT EXISTS idx_collection_jobs_scheduled_at ON collection_jobs (scheduled_at);
			CREATE INDEX IF NOT EXISTS idx_collection_jobs_status ON collection_jobs (status);
			CREATE INDEX IF NOT EXISTS idx_collection_jobs_geo ON collection_jobs (province, district, sector);
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
