package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jvconstructions/constructions-backend/database"
)

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	startedAt time.Time
}

func newHealthHandler(db database.Database) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		startedAt: time.Now(),
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// health reports liveness plus a database round trip. A failed ping degrades
// the status but still answers 200 so load balancers see the process alive.
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:   "ok",
			Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
			Database: "up",
		}

		if err := h.db.Ping(); err != nil {
			h.logger.Error().Err(err).Msg("Database ping failed")
			resp.Status = "degraded"
			resp.Database = "down"
		}

		h.responder.WriteJSON(w, resp)
	}
}
