package migrate

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoMigrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations"))
}

func TestMigrations_Parse(t *testing.T) {
	migrations, err := goose.CollectMigrations(repoMigrationsDir(t), 0, goose.MaxVersion)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, int64(1), migrations[0].Version)
}

func TestMigrations_CreateRunTables(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(repoMigrationsDir(t), "00001_create_rating_runs.sql"))
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, "-- +goose Up")
	assert.Contains(t, s, "-- +goose Down")
	for _, table := range []string{"rating_runs", "rating_run_books"} {
		assert.Contains(t, s, "CREATE TABLE "+table+" (")
		assert.Contains(t, s, "DROP TABLE IF EXISTS "+table+";")
	}
}

func TestMigrator_Create(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer
	m, err := New(nil, dir, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	require.NoError(t, m.Create("add_run_index"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_add_run_index.sql"), entries[0].Name())

	b, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(b), "-- +goose Up")
	assert.Contains(t, logs.String(), "add_run_index")
}

func TestMigrator_CreateRequiresName(t *testing.T) {
	m, err := New(nil, t.TempDir(), nil)
	require.NoError(t, err)
	assert.Error(t, m.Create(""))
}

func TestOpen_RequiresDSN(t *testing.T) {
	_, _, err := Open(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}
