package database

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	migrate "github.com/rubenv/sql-migrate"
)

const dialect = "postgres"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the embedded migration source
var Migrations = &migrate.EmbedFileSystemMigrationSource{
	FileSystem: migrationFiles,
	Root:       "migrations",
}

// MigrationState describes one known migration
type MigrationState struct {
	ID        string
	Applied   bool
	AppliedAt *time.Time
}

// MigrateUp applies every pending migration
func MigrateUp(db *sql.DB) (int, error) {
	n, err := migrate.Exec(db, dialect, Migrations, migrate.Up)
	if err != nil {
		return n, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return n, nil
}

// MigrateDown rolls back up to limit migrations; zero rolls back all
func MigrateDown(db *sql.DB, limit int) (int, error) {
	n, err := migrate.ExecMax(db, dialect, Migrations, migrate.Down, limit)
	if err != nil {
		return n, fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return n, nil
}

// MigrationStatus lists known migrations with their applied state
func MigrationStatus(db *sql.DB) ([]MigrationState, error) {
	known, err := Migrations.FindMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	records, err := migrate.GetMigrationRecords(db, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration records: %w", err)
	}
	applied := make(map[string]time.Time, len(records))
	for _, r := range records {
		applied[r.Id] = r.AppliedAt
	}

	states := make([]MigrationState, 0, len(known))
	for _, m := range known {
		state := MigrationState{ID: m.Id}
		if at, ok := applied[m.Id]; ok {
			at := at
			state.Applied = true
			state.AppliedAt = &at
		}
		states = append(states, state)
	}
	return states, nil
}
