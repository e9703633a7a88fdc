package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// ApplyMigrations runs every *.up.sql file in name order. The statements are
// idempotent so running it at every start is safe.
func ApplyMigrations(ctx context.Context, db *sqlx.DB) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := applyFile(ctx, db, name); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMigration runs the single migration file whose name ends in
// <migrationName>.sql, e.g. "create_records.up".
func ApplyMigration(ctx context.Context, db *sqlx.DB, migrationName string) error {
	name, err := migrationFilePath(migrationName)
	if err != nil {
		return err
	}
	return applyFile(ctx, db, name)
}

func applyFile(ctx context.Context, db *sqlx.DB, name string) error {
	content, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	return nil
}

func migrationFilePath(migrationName string) (string, error) {
	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return "", fmt.Errorf("failed to read migrations: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if pattern.MatchString(e.Name()) {
			return "migrations/" + e.Name(), nil
		}
	}
	return "", fmt.Errorf("migration file not found: %s", strings.TrimSpace(migrationName))
}
