package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"collab-escrow/internal/core/port"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 60 * time.Second
)

// eventsReq parses `after`, `campaign_id` and `limit` query parameters.
func eventsReq(r *http.Request) (port.EventsReq, bool) {
	var (
		q   = r.URL.Query()
		req port.EventsReq
		err error
	)
	if s := q.Get("after"); s != "" {
		if req.AfterSeq, err = strconv.ParseInt(s, 10, 64); err != nil || req.AfterSeq < 0 {
			return req, false
		}
	}
	if s := q.Get("campaign_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return req, false
		}
		req.CampaignID = &id
	}
	if s := q.Get("limit"); s != "" {
		if req.Limit, err = strconv.Atoi(s); err != nil {
			return req, false
		}
	}
	return req, true
}

// handleListEvents returns a page of ledger events for indexers. Clients
// page by passing the seq of the last event they saw as `after`.
func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	req, ok := eventsReq(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid query parameters")
		return
	}
	events, err := h.svc.ListEvents(r.Context(), req)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// handleEventStream upgrades to a websocket and sends every event after
// `after` as a JSON text message, then keeps sending new events as they are
// appended. Messages from the client are ignored.
func (h *Handler) handleEventStream(w http.ResponseWriter, r *http.Request) {
	req, ok := eventsReq(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid query parameters")
		return
	}
	wc, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("event stream upgrade failed", slog.Any("error", err))
		return
	}
	defer wc.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := wc.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	poll := time.NewTicker(h.pollInterval)
	defer poll.Stop()
	reread := true
	for {
		changed := h.hub.Changed()
		if reread {
			events, err := h.svc.ListEvents(ctx, req)
			if err != nil {
				if ctx.Err() == nil {
					h.logger.Error("event stream read failed", slog.Any("error", err))
				}
				closeStream(wc, websocket.CloseInternalServerErr)
				return
			}
			for _, ev := range events {
				_ = wc.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err = wc.WriteJSON(ev); err != nil {
					return
				}
				req.AfterSeq = ev.Seq
			}
			if len(events) > 0 {
				continue
			}
		}
		select {
		case <-ctx.Done():
			closeStream(wc, websocket.CloseNormalClosure)
			return
		case <-changed:
			// Notifications that carry no seq are caught by the poll.
			reread = h.hub.Last() > req.AfterSeq
		case <-poll.C:
			reread = true
		case <-ping.C:
			reread = false
			_ = wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err = wc.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func closeStream(wc *websocket.Conn, code int) {
	_ = wc.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = wc.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""))
}
