package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin

-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin

-- +goose StatementEnd
`

// NewMigrationFile writes an empty goose SQL migration into dir and returns
// its path. The name is slugged, so "add perfumes index" becomes
// <timestamp>_add_perfumes_index.sql.
func NewMigrationFile(dir, name string) (string, error) {
	slug := slugMigrationName(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q is empty after slugging", name)
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir %q: %w", dir, err)
	}

	version := time.Now().UTC().Format("20060102150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, slug))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("migration %s already exists", path)
	}
	if err := os.WriteFile(path, []byte(migrationTemplate), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}

func slugMigrationName(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}
