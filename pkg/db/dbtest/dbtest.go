// Package dbtest opens migrated sqlite stores for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/freezerplan-backend/pkg/config"
	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	"github.com/angelmondragon/freezerplan-backend/pkg/migrate"
	"gorm.io/gorm"
)

// Open returns a client on a fresh, fully migrated sqlite file under t.TempDir.
func Open(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{
		Path:         filepath.Join(t.TempDir(), fmt.Sprintf("%s.db", sanitize(t.Name()))),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if _, err := migrate.Up(context.Background(), sqlDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}

// Gorm is Open for tests that only need the GORM handle.
func Gorm(t *testing.T) *gorm.DB {
	t.Helper()
	return Open(t).DB()
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
