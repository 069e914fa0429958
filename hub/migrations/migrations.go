// Package migrations owns the database schema lifecycle. New schema changes
// are appended as gormigrate versions; a clean database skips the version
// list and initializes the full schema directly.
package migrations

import (
	"log/slog"

	"founderhub/hub/schema"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	migration := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			// Placeholder for the schema state before versioned migrations.
			ID:      "0",
			Migrate: func(*gorm.DB) error { return nil },
		},
	})

	migration.InitSchema(func(txn *gorm.DB) error {
		slog.Info("clean database detected, running full schema initialization")
		return txn.AutoMigrate(schema.AllTables()...)
	})

	return migration.Migrate()
}
