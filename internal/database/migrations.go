package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Users: sweep scan and list ordering
		{"users", "idx_users_last_login_at", "last_login_at"},
		{"users", "idx_users_registered_at", "registered_at"},

		// User roles: project-users listing
		{"user_roles", "idx_user_roles_project_id", "project_id"},

		// Projects / tasks: list ordering
		{"projects", "idx_projects_created_at", "created_at"},
		{"tasks", "idx_tasks_created_at", "created_at"},

		// Organisation managers: orgs-managed lookup
		{"organisation_managers", "idx_org_managers_user_id", "user_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
