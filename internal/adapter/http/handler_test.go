package httpadapter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collab-escrow/internal/adapter/memory"
	"collab-escrow/internal/adapter/stream"
	"collab-escrow/internal/adapter/usecase"
	"collab-escrow/internal/core/domain"
	"collab-escrow/internal/core/port"
)

const (
	brand      = "brand"
	influencer = "influencer"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := stream.NewHub()
	repo := memory.NewEscrowRepository(memory.WithAppendHook(hub.Notify))
	svc := usecase.NewEscrowUseCase(repo, "treasury", logger)
	srv := httptest.NewServer(NewHandler(svc, hub, logger, time.Second).Router())
	t.Cleanup(srv.Close)
	return srv
}

// call sends a request as caller and decodes the JSON response into out
// when out is non-nil.
func call(t *testing.T, srv *httptest.Server, method, path, caller string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+"/api/v1"+path, rd)
	require.NoError(t, err)
	if caller != "" {
		req.Header.Set(CallerHeader, caller)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createCampaign(t *testing.T, srv *httptest.Server) domain.Campaign {
	t.Helper()
	var c domain.Campaign
	status := call(t, srv, http.MethodPost, "/campaigns/", brand, port.CreateCampaignReq{
		Deliverer:        influencer,
		MilestoneAmounts: []int64{1_000_000, 2_000_000},
		FeeRateBps:       1000,
	}, &c)
	require.Equal(t, http.StatusCreated, status)
	return c
}

func TestCampaignFlow(t *testing.T) {
	srv := newServer(t)
	c := createCampaign(t, srv)
	assert.Equal(t, domain.StateCreated, c.State)
	assert.Equal(t, brand, c.Funder)

	var got domain.Campaign
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/campaigns/1/deposits", brand, depositReq{Amount: 3_000_000}, &got))
	assert.Equal(t, domain.StateFunded, got.State)
	assert.Equal(t, int64(3_000_000), got.TotalEscrowed)

	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/campaigns/1/milestones/0/proof", influencer, proofReq{Proof: "https://example.com/p"}, nil))
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/campaigns/1/milestones/0/approve", brand, nil, nil))

	var rel port.ReleaseResp
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/campaigns/1/release", brand, nil, &rel))
	assert.Equal(t, []int{0}, rel.Milestones)
	assert.Equal(t, int64(900_000), rel.DelivererAmount)
	assert.Equal(t, int64(100_000), rel.FeeAmount)

	var m domain.Milestone
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/campaigns/1/milestones/0", "", nil, &m))
	assert.True(t, m.Paid)

	var bal balanceResp
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/accounts/treasury/balance", "", nil, &bal))
	assert.Equal(t, int64(100_000), bal.Balance)

	var list []domain.Campaign
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/campaigns/?identity="+influencer, "", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)

	var events []domain.Event
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/events?after=2&limit=2", "", nil, &events))
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventProofSubmitted, events[0].Type)
	assert.Equal(t, domain.EventMilestoneApproved, events[1].Type)
}

func TestErrorStatuses(t *testing.T) {
	srv := newServer(t)
	createCampaign(t, srv)

	tests := []struct {
		name   string
		method string
		path   string
		caller string
		body   any
		status int
		code   string
	}{
		{"missing caller", http.MethodPost, "/campaigns/1/deposits", "", depositReq{Amount: 1}, http.StatusUnauthorized, "unauthenticated"},
		{"wrong caller", http.MethodPost, "/campaigns/1/deposits", influencer, depositReq{Amount: 1}, http.StatusForbidden, "unauthorized"},
		{"unknown campaign", http.MethodGet, "/campaigns/42", "", nil, http.StatusNotFound, "campaign_not_found"},
		{"bad id", http.MethodGet, "/campaigns/abc", "", nil, http.StatusBadRequest, "bad_request"},
		{"zero deposit", http.MethodPost, "/campaigns/1/deposits", brand, depositReq{}, http.StatusBadRequest, "invalid_amount"},
		{"unknown field", http.MethodPost, "/campaigns/1/deposits", brand, map[string]any{"amt": 1}, http.StatusBadRequest, "bad_request"},
		{"approve without proof", http.MethodPost, "/campaigns/1/milestones/0/approve", brand, nil, http.StatusConflict, "milestone_proof_missing"},
		{"nothing to release", http.MethodPost, "/campaigns/1/release", brand, nil, http.StatusConflict, "nothing_to_release"},
		{"bad milestone", http.MethodGet, "/campaigns/1/milestones/9", "", nil, http.StatusBadRequest, "invalid_milestone_index"},
		{"bad events cursor", http.MethodGet, "/events?after=-1", "", nil, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorBody
			status := call(t, srv, tt.method, tt.path, tt.caller, tt.body, &body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestCancelTwiceConflicts(t *testing.T) {
	srv := newServer(t)
	createCampaign(t, srv)

	var c domain.Campaign
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/campaigns/1/cancel", influencer, nil, &c))
	assert.Equal(t, domain.StateCancelled, c.State)

	var body errorBody
	assert.Equal(t, http.StatusConflict, call(t, srv, http.MethodPost, "/campaigns/1/cancel", brand, nil, &body))
	assert.Equal(t, "invalid_state", body.Error.Code)
}

func TestEventStream(t *testing.T) {
	srv := newServer(t)
	createCampaign(t, srv)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events/stream?after=0"
	wc, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer wc.Close()
	require.NoError(t, wc.SetReadDeadline(time.Now().Add(5*time.Second)))

	var ev domain.Event
	require.NoError(t, wc.ReadJSON(&ev))
	assert.Equal(t, int64(1), ev.Seq)
	assert.Equal(t, domain.EventCampaignCreated, ev.Type)

	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/campaigns/1/deposits", brand, depositReq{Amount: 500}, nil))

	require.NoError(t, wc.ReadJSON(&ev))
	assert.Equal(t, int64(2), ev.Seq)
	assert.Equal(t, domain.EventFundsDeposited, ev.Type)
	assert.Equal(t, int64(500), ev.Amount)
}
