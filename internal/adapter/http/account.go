package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type balanceResp struct {
	Identity string `json:"identity"`
	Balance  int64  `json:"balance"`
}

type reputationResp struct {
	Identity   string `json:"identity"`
	Reputation int64  `json:"reputation"`
}

// handleBalance returns the funds released or refunded to an identity.
func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")
	balance, err := h.svc.GetBalance(r.Context(), identity)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResp{Identity: identity, Balance: balance})
}

// handleReputation returns the number of campaigns an identity completed
// as deliverer.
func (h *Handler) handleReputation(w http.ResponseWriter, r *http.Request) {
	identity := chi.URLParam(r, "identity")
	score, err := h.svc.GetReputation(r.Context(), identity)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reputationResp{Identity: identity, Reputation: score})
}
