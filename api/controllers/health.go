package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/leader-akash/pizza-craft/api/responses"
	"github.com/leader-akash/pizza-craft/pkg/config"
	"github.com/leader-akash/pizza-craft/pkg/db"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
	"github.com/leader-akash/pizza-craft/pkg/logger"
	"github.com/leader-akash/pizza-craft/pkg/redis"
)

const envHeader = "X-PizzaCraft-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasources. The cache is optional; a nil redis
// client is reported as disabled, not unhealthy.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}

		if dbP == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "database not wired"))
			return
		}
		if err := dbP.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
			return
		}
		checks["database"] = "ok"

		if redisClient == nil {
			checks["cache"] = "disabled"
		} else if err := redisClient.Ping(ctx); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache unreachable"))
			return
		} else {
			checks["cache"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
