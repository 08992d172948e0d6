package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"collab-escrow/internal/core/domain"
)

type errorBody struct {
	RequestID string    `json:"request_id"`
	Error     errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps ledger errors to HTTP status codes. Unknown errors are
// internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidParticipants),
		errors.Is(err, domain.ErrInvalidMilestoneList),
		errors.Is(err, domain.ErrInvalidFeeRate),
		errors.Is(err, domain.ErrInvalidMilestoneIndex),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidProof):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrMilestoneProofMissing),
		errors.Is(err, domain.ErrMilestoneAlreadyPaid),
		errors.Is(err, domain.ErrNothingToRelease),
		errors.Is(err, domain.ErrInsufficientEscrow),
		errors.Is(err, domain.ErrCannotCancelAfterRelease):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeLedgerError writes the response for an error returned by the usecase.
// Internal errors are logged and their message is not exposed.
func (h *Handler) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("ledger error", slog.String("path", r.URL.Path), slog.Any("error", err))
		writeError(w, r, status, "internal", "internal error")
		return
	}
	writeError(w, r, status, domain.ErrorKind(err), err.Error())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	reqID := middleware.GetReqID(r.Context())
	if reqID == "" {
		reqID = uuid.NewString()
	}
	writeJSON(w, status, errorBody{RequestID: reqID, Error: errorInfo{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
