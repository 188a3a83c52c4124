package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xmxsystem/webhook-backend/pkg/config"
	"github.com/xmxsystem/webhook-backend/pkg/db"
	"github.com/xmxsystem/webhook-backend/pkg/logger"
	"github.com/xmxsystem/webhook-backend/pkg/redis"
)

const serviceName = "XMX Webhook API"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Root answers load-balancer probes that only check for a 200.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": serviceName,
		})
	}
}

func Healthz(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithFields(r.Context(), map[string]any{
			"env":  cfg.App.Env,
			"path": r.URL.Path,
		})
		logg.Info(ctx, "health.check")

		writeJSON(w, http.StatusOK, map[string]string{
			"status":      "healthy",
			"environment": cfg.App.Env,
			"version":     "1.0.0",
		})
	}
}

// Readyz reports whether the service can reach its backing stores. Either
// pinger may be nil when that dependency is disabled in the environment.
func Readyz(logg *logger.Logger, database db.Pinger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}
		healthy := true

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				logg.Error(ctx, "health.db_unreachable", err)
				checks["database"] = "unreachable"
				healthy = false
			} else {
				checks["database"] = "ok"
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				logg.Error(ctx, "health.redis_unreachable", err)
				checks["redis"] = "unreachable"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}
		writeJSON(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
