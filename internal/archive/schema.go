package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
)

// schemaDDL holds the archive schema shared by every driver.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL applied by Open.
func SchemaDDL() string {
	return schemaDDL
}

// EnsureSchema applies the schema one statement at a time so drivers without
// multi-statement support accept it.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("archive: db is nil")
	}
	for _, stmt := range schemaStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func schemaStatements() []string {
	parts := strings.Split(schemaDDL, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
