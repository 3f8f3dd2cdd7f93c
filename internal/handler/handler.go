package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nitespot-dev/nitespot/internal/service"
	"github.com/nitespot-dev/nitespot/shared/config"
	internal_errors "github.com/nitespot-dev/nitespot/shared/errors"
	"github.com/nitespot-dev/nitespot/shared/logger"
)

// Pinger is the readiness dependency (the db connection).
type Pinger interface {
	Ping() error
}

type Handler struct {
	auth      service.AuthService
	venue     service.VenueService
	comment   service.CommentService
	booking   service.BookingService
	event     service.EventService
	user      service.UserService
	media     service.MediaService
	analytics service.AnalyticsService
	health    Pinger
	cfg       *config.Config
}

func New(
	auth service.AuthService,
	venue service.VenueService,
	comment service.CommentService,
	booking service.BookingService,
	event service.EventService,
	user service.UserService,
	media service.MediaService,
	analytics service.AnalyticsService,
	health Pinger,
	cfg *config.Config,
) *Handler {
	return &Handler{auth, venue, comment, booking, event, user, media, analytics, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// parseCursor reads the ?after=<micros>&limit=n feed paging params.
// A missing after means "newest page"; limit 0 defers to the service
// default.
func parseCursor(r *http.Request) (*int64, int, error) {
	var after *int64
	if raw := r.URL.Query().Get("after"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, internal_errors.BadRequest("after must be an integer cursor")
		}
		after = &v
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return nil, 0, internal_errors.BadRequest("limit must be a non-negative integer")
		}
		limit = v
	}
	return after, limit, nil
}
