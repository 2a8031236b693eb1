package db

import (
	"fmt"

	types "github.com/venturegate/validation-backend/internal/domain"
)

// AutoMigrateAll keeps the schema aligned with the model structs. Ordering
// matters only for readability; FK constraints are disabled during migration.
func (s *PostgresService) AutoMigrateAll() error {
	models := []any{
		&types.Project{},
		&types.EvidenceItem{},
		&types.PolicyOverride{},
		&types.Session{},
		&types.JobRun{},
	}
	if err := s.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	s.log.Info("Schema migration complete", "models", len(models))
	return nil
}
