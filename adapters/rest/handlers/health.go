package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"todo-service/adapters/rest"
	"todo-service/core"
	"todo-service/pkg/res"
)

// poolStater is implemented by stores backed by a database/sql pool.
type poolStater interface {
	Stats() sql.DBStats
}

// NewHealthHandler pings the storage and, for pooled stores, adds connection pool stats.
func NewHealthHandler(log *slog.Logger, storage core.Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out := rest.HealthOut{Storage: "ok"}
		code := http.StatusOK
		if err := storage.Ping(ctx); err != nil {
			log.Warn("storage is unreachable", "error", err)
			out.Storage = "down"
			code = http.StatusServiceUnavailable
		}

		if ps, ok := storage.(poolStater); ok {
			st := ps.Stats()
			out.Pool = &rest.PoolOut{
				Open:      st.OpenConnections,
				InUse:     st.InUse,
				Idle:      st.Idle,
				MaxOpen:   st.MaxOpenConnections,
				WaitCount: st.WaitCount,
			}
		}

		res.JSON(w, out, code)
	}
}
