package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/freezerplan-backend/pkg/config"
	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
)

// MaybeRun applies the embedded migrations when the feature flag is enabled.
// The local store is a single sqlite file, so this runs in every environment that opts in.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "db_path": cfg.DB.Path})
	logg.Info(ctx, "running Goose migrations (auto-run)")

	version, err := Up(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(logg.WithField(ctx, "schema_version", version), "Goose migrations completed")
	return nil
}
