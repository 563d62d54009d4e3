package controllers

import (
	"net/http"

	"github.com/maisonarlo/storefront-backend/api/responses"
	"github.com/maisonarlo/storefront-backend/pkg/config"
	"github.com/maisonarlo/storefront-backend/pkg/db"
	pkgerrors "github.com/maisonarlo/storefront-backend/pkg/errors"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Maison-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness. The API can boot without a database (the
// checkout endpoint works standalone), so a missing pinger is reported as
// unconfigured rather than failing the probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-Maison-Env", cfg.App.Env)

		dbStatus := "unconfigured"
		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not reachable"))
				return
			}
			dbStatus = "ok"
		}

		responses.WriteSuccess(w, map[string]string{
			"status":   "ready",
			"database": dbStatus,
		})
	}
}
