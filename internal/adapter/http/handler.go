package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"collab-escrow/internal/adapter/stream"
	"collab-escrow/internal/core/port"
)

// CallerHeader carries the identity authenticated by the gateway in front
// of this service.
const CallerHeader = "X-Caller-Identity"

const defaultPollInterval = 5 * time.Second

type callerKey struct{}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the ledger usecase, a logger for structured logging and the hub
// that wakes event stream subscribers. Routes are registered on a
// chi.Router for convenient method handling.
type Handler struct {
	svc      port.EscrowUseCase
	logger   *slog.Logger
	hub      *stream.Hub
	router   chi.Router
	upgrader websocket.Upgrader

	// pollInterval bounds how long a stream subscriber waits without a
	// notification before re-reading the event log.
	pollInterval time.Duration
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.EscrowUseCase, hub *stream.Hub, logger *slog.Logger, pollInterval time.Duration) *Handler {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	h := &Handler{
		svc:          svc,
		logger:       logger,
		hub:          hub,
		pollInterval: pollInterval,
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Get("/{id}", h.handleGetCampaign)
			r.Get("/{id}/milestones/{index}", h.handleGetMilestone)

			r.Group(func(r chi.Router) {
				r.Use(requireCaller)
				r.Post("/", h.handleCreateCampaign)
				r.Post("/{id}/deposits", h.handleDeposit)
				r.Post("/{id}/milestones/{index}/proof", h.handleSubmitProof)
				r.Post("/{id}/milestones/{index}/approve", h.handleApprove)
				r.Post("/{id}/release", h.handleRelease)
				r.Post("/{id}/cancel", h.handleCancel)
			})
		})
		r.Get("/events", h.handleListEvents)
		r.Get("/events/stream", h.handleEventStream)
		r.Get("/accounts/{identity}/balance", h.handleBalance)
		r.Get("/accounts/{identity}/reputation", h.handleReputation)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// requireCaller rejects requests without an authenticated identity and
// stores it in the request context.
func requireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := r.Header.Get(CallerHeader)
		if caller == "" {
			writeError(w, r, http.StatusUnauthorized, "unauthenticated", "missing "+CallerHeader)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
	})
}

func callerFrom(ctx context.Context) string {
	caller, _ := ctx.Value(callerKey{}).(string)
	return caller
}
