package db

import (
	"fmt"

	"gorm.io/gorm"

	"contest-analytics/internal/model"
)

var models = []interface{}{
	&model.Photographer{},
	&model.Judge{},
	&model.Visitor{},
	&model.Category{},
	&model.Photo{},
	&model.Gallery{},
	&model.PhotoGallery{},
	&model.JudgeScore{},
	&model.VisitorVote{},
	&model.Winner{},
	&model.QueryLog{},
}

// Indexes gorm tags cannot express. Statements must stay valid on both
// PostgreSQL and SQLite.
var migrationStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_photos_category ON photos (category_id);`,
	`CREATE INDEX IF NOT EXISTS idx_judge_scores_judge ON judge_scores (judge_id);`,
	`CREATE INDEX IF NOT EXISTS idx_visitor_votes_visitor ON visitor_votes (visitor_id);`,
	`CREATE INDEX IF NOT EXISTS idx_query_logs_executed_desc ON query_logs (executed_at DESC);`,
}

// Migrate creates or updates the contest schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return runMigrations(db)
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
