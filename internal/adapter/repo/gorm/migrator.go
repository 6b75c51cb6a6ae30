package gormrepo

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

const versionTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// ApplyMigrations brings the schema up to date: every *.sql file in
// fsys runs once, in lexical order, inside its own transaction.
// Applied versions are tracked in schema_migrations, so restarts and
// redeploys are no-ops for migrations already in.
func ApplyMigrations(ctx context.Context, db *gorm.DB, fsys fs.FS) error {
	if err := db.WithContext(ctx).Exec(versionTableSQL).Error; err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")
		if applied[version] {
			continue
		}

		statements, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(statements)).Error; err != nil {
				return fmt.Errorf("run migration %s: %w", name, err)
			}
			return tx.Exec(
				`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				version, time.Now(),
			).Error
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func appliedVersions(ctx context.Context, db *gorm.DB) (map[string]bool, error) {
	var versions []string
	if err := db.WithContext(ctx).Table("schema_migrations").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied versions: %w", err)
	}
	out := make(map[string]bool, len(versions))
	for _, v := range versions {
		out[v] = true
	}
	return out, nil
}
