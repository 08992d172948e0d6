package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"collab-escrow/internal/core/port"
)

type depositReq struct {
	Amount int64 `json:"amount"`
}

type proofReq struct {
	Proof string `json:"proof"`
}

// pathParams parses the {id} and, when present, {index} URL parameters.
// It writes HTTP 400 and returns false on malformed values.
func pathParams(w http.ResponseWriter, r *http.Request) (id int64, index int, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid campaign id")
		return 0, 0, false
	}
	if s := chi.URLParam(r, "index"); s != "" {
		index, err = strconv.Atoi(s)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "bad_request", "invalid milestone index")
			return 0, 0, false
		}
	}
	return id, index, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON")
		return false
	}
	return true
}

// handleCreateCampaign creates a campaign funded by the caller. It returns
// HTTP 201 with the campaign.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req port.CreateCampaignReq
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), callerFrom(r.Context()), req)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	id, _, ok := pathParams(w, r)
	if !ok {
		return
	}
	var req depositReq
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.DepositFunds(r.Context(), callerFrom(r.Context()), id, req.Amount)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	id, index, ok := pathParams(w, r)
	if !ok {
		return
	}
	var req proofReq
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.SubmitProof(r.Context(), callerFrom(r.Context()), id, index, req.Proof)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, index, ok := pathParams(w, r)
	if !ok {
		return
	}
	c, err := h.svc.ApproveMilestone(r.Context(), callerFrom(r.Context()), id, index)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleRelease pays out every approved milestone and returns the split.
func (h *Handler) handleRelease(w http.ResponseWriter, r *http.Request) {
	id, _, ok := pathParams(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.ReleaseFunds(r.Context(), callerFrom(r.Context()), id)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, _, ok := pathParams(w, r)
	if !ok {
		return
	}
	c, err := h.svc.CancelCampaign(r.Context(), callerFrom(r.Context()), id)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, _, ok := pathParams(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleGetMilestone(w http.ResponseWriter, r *http.Request) {
	id, index, ok := pathParams(w, r)
	if !ok {
		return
	}
	m, err := h.svc.GetMilestone(r.Context(), id, index)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleListCampaigns lists the campaigns of the identity given in the
// `identity` query parameter.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	identity := r.URL.Query().Get("identity")
	if identity == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", "missing identity")
		return
	}
	campaigns, err := h.svc.ListCampaigns(r.Context(), identity)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}
