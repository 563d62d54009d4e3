package migrate

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMigrationFile(t *testing.T) {
	dir := t.TempDir()

	path, err := NewMigrationFile(dir, "Add Perfumes Name Index!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_perfumes_name_index.sql"), path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "-- +goose Down")
}

func TestNewMigrationFile_unusableName(t *testing.T) {
	_, err := NewMigrationFile(t.TempDir(), "!!!")
	require.Error(t, err)
}

func TestSlugMigrationName(t *testing.T) {
	assert.Equal(t, "add_orders_table", slugMigrationName("  Add Orders--Table "))
	assert.Equal(t, "seed_perfumes_2", slugMigrationName("seed perfumes 2"))
	assert.Equal(t, "", slugMigrationName("---"))
}
