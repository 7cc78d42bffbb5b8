package migrate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/angelmondragon/freezerplan-backend/pkg/config"
	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestEmbeddedMigrationsMatchDisk(t *testing.T) {
	t.Parallel()

	embeddedNames, err := fs.Glob(Migrations(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, embeddedNames)

	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	require.Len(t, onDisk, len(embeddedNames))

	require.NoError(t, ValidateDir("migrations"))
	require.NoError(t, ValidateFS(Migrations()))
}

func TestUpCreatesPlannerSchema(t *testing.T) {
	t.Parallel()

	client, err := db.New(context.Background(), config.DBConfig{
		Path:         filepath.Join(t.TempDir(), "migrate.db"),
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)

	version, err := Up(context.Background(), sqlDB)
	require.NoError(t, err)
	assert.Equal(t, int64(20260105090300), version)

	for _, table := range []string{"products", "households", "household_slots", "household_plans", "plan_lines", "plan_pickups", "household_calendars", "calendar_days"} {
		assert.Truef(t, client.DB().Migrator().HasTable(table), "table %s", table)
	}

	again, err := Up(context.Background(), sqlDB)
	require.NoError(t, err)
	assert.Equal(t, version, again)
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC)
	path, err := CreateSQLMigration(dir, "Add Pantry Notes!", now)
	require.NoError(t, err)
	assert.Equal(t, "20260302081500_add_pantry_notes.sql", filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.Contains(t, string(content), "-- +goose Down")
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "add pantry notes", now)
	require.Error(t, err)

	_, err = CreateSQLMigration(dir, "!!!", now)
	require.Error(t, err)
}

func TestValidateFSReportsEveryProblem(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"20260101000000_ok.sql":      {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"20260101000000_dup.sql":     {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"20260102000000_no_down.sql": {Data: []byte("-- +goose Up\n")},
		"badname.sql":                {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"README.md":                  {Data: []byte("ignored")},
	}

	err := ValidateFS(fsys)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "already used")
	assert.Contains(t, err.Error(), "-- +goose Down")
	assert.Contains(t, err.Error(), "badname.sql")
}
