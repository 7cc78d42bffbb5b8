package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/freezerplan-backend/api/responses"
	"github.com/angelmondragon/freezerplan-backend/pkg/config"
	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/freezerplan-backend/pkg/errors"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
	"github.com/angelmondragon/freezerplan-backend/pkg/redis"
)

const (
	envHeader    = "X-FreezerPlan-Env"
	readyTimeout = 2 * time.Second
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the session store and, when configured, the calendar cache.
// A failing cache reports degraded instead of failing readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, store db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{"db": "ok", "cache": "disabled"}
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "database not configured"))
			return
		}
		if err := store.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable").
				WithDetails(map[string]any{"dependency": "db"}))
			return
		}

		status := "ready"
		if cache != nil {
			checks["cache"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				checks["cache"] = "unavailable"
				status = "degraded"
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "error", err.Error()), "calendar cache ping failed")
				}
			}
		}
		responses.WriteSuccess(w, map[string]any{"status": status, "checks": checks})
	}
}
