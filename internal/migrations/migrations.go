// Package migrations holds the embedded database schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Migration is one embedded schema file.
type Migration struct {
	Version string
	SQL     string
}

// List returns the embedded migrations ordered by version.
func List() ([]Migration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		out = append(out, Migration{Version: strings.TrimSuffix(name, ".sql"), SQL: string(body)})
	}
	return out, nil
}

// Apply runs every migration not yet recorded in schema_migrations. Each
// migration runs in its own transaction. It returns the versions applied.
func Apply(ctx context.Context, db *sql.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, `create table if not exists schema_migrations (
    version text primary key,
    applied_at timestamptz not null default now()
)`); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	all, err := List()
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, m := range all {
		var exists bool
		if err := db.QueryRowContext(ctx, `select exists(select 1 from schema_migrations where version = $1)`, m.Version).Scan(&exists); err != nil {
			return applied, fmt.Errorf("check %s: %w", m.Version, err)
		}
		if exists {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return applied, err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("apply %s: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, `insert into schema_migrations (version) values ($1)`, m.Version); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record %s: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit %s: %w", m.Version, err)
		}
		applied = append(applied, m.Version)
	}
	return applied, nil
}
