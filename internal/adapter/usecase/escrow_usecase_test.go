package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collab-escrow/internal/adapter/memory"
	"collab-escrow/internal/core/domain"
	"collab-escrow/internal/core/port"
	"collab-escrow/internal/core/port/mocks"
)

const (
	brand      = "brand"
	influencer = "influencer"
	treasury   = "treasury"

	unit = 1_000_000 // 1.0 in smallest currency units
)

func newLedger(t *testing.T) (*EscrowUseCase, *memory.EscrowRepository) {
	t.Helper()
	repo := memory.NewEscrowRepository()
	return NewEscrowUseCase(repo, treasury, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func createCampaign(t *testing.T, svc *EscrowUseCase, amounts ...int64) *domain.Campaign {
	t.Helper()
	c, err := svc.CreateCampaign(context.Background(), brand, port.CreateCampaignReq{
		Deliverer:        influencer,
		MilestoneAmounts: amounts,
		FeeRateBps:       1000,
	})
	require.NoError(t, err)
	return c
}

func approve(t *testing.T, svc *EscrowUseCase, id int64, index int) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.SubmitProof(ctx, influencer, id, index, "https://example.com/proof")
	require.NoError(t, err)
	_, err = svc.ApproveMilestone(ctx, brand, id, index)
	require.NoError(t, err)
}

func balance(t *testing.T, svc *EscrowUseCase, identity string) int64 {
	t.Helper()
	b, err := svc.GetBalance(context.Background(), identity)
	require.NoError(t, err)
	return b
}

// TestMilestoneReleaseLifecycle releases two milestones in separate payouts
// and checks the split, the final state and the emitted events.
func TestMilestoneReleaseLifecycle(t *testing.T) {
	svc, repo := newLedger(t)
	ctx := context.Background()

	c := createCampaign(t, svc, 1*unit, 2*unit)
	_, err := svc.DepositFunds(ctx, brand, c.ID, 3*unit)
	require.NoError(t, err)
	approve(t, svc, c.ID, 0)

	resp, err := svc.ReleaseFunds(ctx, brand, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, resp.Milestones)
	assert.Equal(t, int64(1*unit), resp.GrossAmount)
	assert.Equal(t, int64(900_000), resp.DelivererAmount)
	assert.Equal(t, int64(100_000), resp.FeeAmount)

	_, err = svc.ReleaseFunds(ctx, brand, c.ID)
	require.ErrorIs(t, err, domain.ErrNothingToRelease)

	approve(t, svc, c.ID, 1)
	resp, err = svc.ReleaseFunds(ctx, brand, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2*unit), resp.GrossAmount)
	assert.Equal(t, int64(1_800_000), resp.DelivererAmount)
	assert.Equal(t, int64(200_000), resp.FeeAmount)

	final, err := svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, final.State)
	assert.Equal(t, int64(1), final.ReputationScore)
	assert.Equal(t, int64(3*unit), final.TotalReleased)
	require.NoError(t, final.Verify())

	assert.Equal(t, int64(2_700_000), balance(t, svc, influencer))
	assert.Equal(t, int64(300_000), balance(t, svc, treasury))
	rep, err := svc.GetReputation(ctx, influencer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep)

	events, err := svc.ListEvents(ctx, port.EventsReq{CampaignID: &c.ID})
	require.NoError(t, err)
	types := make([]domain.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
		assert.Equal(t, int64(i+1), ev.CampaignSeq)
	}
	assert.Equal(t, []domain.EventType{
		domain.EventCampaignCreated,
		domain.EventFundsDeposited,
		domain.EventProofSubmitted,
		domain.EventMilestoneApproved,
		domain.EventFundsReleased,
		domain.EventProofSubmitted,
		domain.EventMilestoneApproved,
		domain.EventFundsReleased,
	}, types)
	assert.Equal(t, int64(3*unit), events[0].TotalAmount)
	assert.Equal(t, int64(200_000), events[7].FeeAmount)

	transfers := repo.Transfers(c.ID)
	require.Len(t, transfers, 5)
	assert.Equal(t, domain.TransferFee, transfers[4].Kind)
	assert.Equal(t, treasury, transfers[4].To)
}

func TestApproveBeforeProofAndWrongDepositor(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()
	c := createCampaign(t, svc, unit)

	_, err := svc.ApproveMilestone(ctx, brand, c.ID, 0)
	require.ErrorIs(t, err, domain.ErrMilestoneProofMissing)

	_, err = svc.DepositFunds(ctx, influencer, c.ID, unit)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	got, err := svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCreated, got.State)
	assert.Zero(t, got.TotalEscrowed)
}

func TestCancelRefundsFunder(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()
	c := createCampaign(t, svc, unit, 2*unit)

	_, err := svc.DepositFunds(ctx, brand, c.ID, 3*unit)
	require.NoError(t, err)
	_, err = svc.CancelCampaign(ctx, "stranger", c.ID)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	got, err := svc.CancelCampaign(ctx, influencer, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, got.State)
	assert.Equal(t, int64(3*unit), got.RefundedAmount)
	assert.Equal(t, int64(3*unit), balance(t, svc, brand))

	_, err = svc.DepositFunds(ctx, brand, c.ID, unit)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = svc.ApproveMilestone(ctx, brand, c.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	events, err := svc.ListEvents(ctx, port.EventsReq{CampaignID: &c.ID})
	require.NoError(t, err)
	last := events[len(events)-1]
	assert.Equal(t, domain.EventCampaignCancelled, last.Type)
	assert.Equal(t, influencer, last.Actor)
	assert.Equal(t, int64(3*unit), last.RefundedAmount)
}

func TestReleaseUnderfunded(t *testing.T) {
	svc, repo := newLedger(t)
	ctx := context.Background()
	c := createCampaign(t, svc, unit, 2*unit)

	_, err := svc.DepositFunds(ctx, brand, c.ID, unit)
	require.NoError(t, err)
	approve(t, svc, c.ID, 1)

	_, err = svc.ReleaseFunds(ctx, brand, c.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientEscrow)

	got, err := svc.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Milestones[1].Paid)
	assert.Zero(t, got.TotalReleased)
	assert.Zero(t, balance(t, svc, influencer))
	assert.Zero(t, balance(t, svc, treasury))
	assert.Len(t, repo.Transfers(c.ID), 1)

	// topping up the escrow later makes the release possible
	_, err = svc.DepositFunds(ctx, brand, c.ID, 2*unit)
	require.NoError(t, err)
	_, err = svc.ReleaseFunds(ctx, brand, c.ID)
	require.NoError(t, err)
}

func TestCannotCancelAfterRelease(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()
	c := createCampaign(t, svc, unit, unit)
	_, err := svc.DepositFunds(ctx, brand, c.ID, 2*unit)
	require.NoError(t, err)
	approve(t, svc, c.ID, 0)
	_, err = svc.ReleaseFunds(ctx, brand, c.ID)
	require.NoError(t, err)

	_, err = svc.CancelCampaign(ctx, brand, c.ID)
	assert.ErrorIs(t, err, domain.ErrCannotCancelAfterRelease)
}

func TestApproveTwiceEmitsOneEvent(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()
	c := createCampaign(t, svc, unit)
	approve(t, svc, c.ID, 0)

	again, err := svc.ApproveMilestone(ctx, brand, c.ID, 0)
	require.NoError(t, err)
	assert.True(t, again.Milestones[0].Approved)

	events, err := svc.ListEvents(ctx, port.EventsReq{CampaignID: &c.ID})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestPaidMilestoneIsClosed(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()
	c := createCampaign(t, svc, unit, unit)
	_, err := svc.DepositFunds(ctx, brand, c.ID, 2*unit)
	require.NoError(t, err)
	approve(t, svc, c.ID, 0)
	_, err = svc.ReleaseFunds(ctx, brand, c.ID)
	require.NoError(t, err)

	_, err = svc.SubmitProof(ctx, influencer, c.ID, 0, "replacement")
	assert.ErrorIs(t, err, domain.ErrMilestoneAlreadyPaid)
	_, err = svc.ApproveMilestone(ctx, brand, c.ID, 0)
	assert.ErrorIs(t, err, domain.ErrMilestoneAlreadyPaid)
	_, err = svc.SubmitProof(ctx, brand, c.ID, 1, "not mine")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.GetMilestone(ctx, c.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidMilestoneIndex)

	m, err := svc.GetMilestone(ctx, c.ID, 0)
	require.NoError(t, err)
	assert.True(t, m.Paid)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()

	_, err := svc.CreateCampaign(ctx, "", port.CreateCampaignReq{Deliverer: influencer, MilestoneAmounts: []int64{1}})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.CreateCampaign(ctx, brand, port.CreateCampaignReq{Deliverer: influencer})
	assert.ErrorIs(t, err, domain.ErrInvalidMilestoneList)
	_, err = svc.CreateCampaign(ctx, brand, port.CreateCampaignReq{Deliverer: influencer, MilestoneAmounts: []int64{1}, FeeRateBps: 10001})
	assert.ErrorIs(t, err, domain.ErrInvalidFeeRate)
	_, err = svc.CreateCampaign(ctx, brand, port.CreateCampaignReq{Deliverer: brand, MilestoneAmounts: []int64{1}})
	assert.ErrorIs(t, err, domain.ErrInvalidParticipants)

	_, err = svc.GetCampaign(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestZeroFeeReleaseSkipsTreasury(t *testing.T) {
	svc, repo := newLedger(t)
	ctx := context.Background()
	c, err := svc.CreateCampaign(ctx, brand, port.CreateCampaignReq{
		Deliverer:        influencer,
		MilestoneAmounts: []int64{unit},
	})
	require.NoError(t, err)
	_, err = svc.DepositFunds(ctx, brand, c.ID, unit)
	require.NoError(t, err)
	approve(t, svc, c.ID, 0)

	resp, err := svc.ReleaseFunds(ctx, brand, c.ID)
	require.NoError(t, err)
	assert.Zero(t, resp.FeeAmount)
	assert.Len(t, repo.Transfers(c.ID), 2)
	assert.Zero(t, balance(t, svc, treasury))
}

// TestRejectionIsLogged ensures a rejected operation is attributable to its
// caller even though it changed nothing.
func TestRejectionIsLogged(t *testing.T) {
	var buf bytes.Buffer
	repo := memory.NewEscrowRepository()
	svc := NewEscrowUseCase(repo, treasury, slog.New(slog.NewJSONHandler(&buf, nil)))
	c := createCampaign(t, svc, unit)
	buf.Reset()

	_, err := svc.DepositFunds(context.Background(), influencer, c.ID, unit)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, string(domain.OpDeposit), rec["op"])
	assert.Equal(t, influencer, rec["actor"])
	assert.Equal(t, "unauthorized", rec["kind"])
	assert.Equal(t, float64(c.ID), rec["campaign_id"])
}

// TestRepositoryErrorPropagates ensures storage failures reach the caller
// unchanged.
func TestRepositoryErrorPropagates(t *testing.T) {
	repo := mocks.NewMockEscrowRepository(t)
	dbErr := errors.New("connection reset")

	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(7), mock.AnythingOfType("port.MutateFunc")).
		Return(nil, nil, dbErr)

	svc := NewEscrowUseCase(repo, treasury, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := svc.ReleaseFunds(context.Background(), brand, 7)
	require.ErrorIs(t, err, dbErr)
}

// TestReleaseMutation runs the mutation the usecase hands to the repository
// against a campaign and checks the transfers it requests.
func TestReleaseMutation(t *testing.T) {
	repo := mocks.NewMockEscrowRepository(t)

	c, err := domain.NewCampaign(brand, influencer, []int64{1000, 3000}, 2500)
	require.NoError(t, err)
	c.ID = 3
	require.NoError(t, c.Deposit(4000))
	require.NoError(t, c.SubmitProof(1, "p"))
	_, err = c.Approve(1)
	require.NoError(t, err)

	var got *port.Mutation
	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(3), mock.Anything).
		RunAndReturn(func(_ context.Context, _ int64, fn port.MutateFunc) (*domain.Campaign, *domain.Event, error) {
			next := c.Clone()
			m, err := fn(next)
			if err != nil {
				return nil, nil, err
			}
			got = m
			return next, m.Event, nil
		})

	svc := NewEscrowUseCase(repo, treasury, slog.New(slog.NewTextHandler(io.Discard, nil)))
	resp, err := svc.ReleaseFunds(context.Background(), brand, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), resp.GrossAmount)
	assert.Equal(t, domain.StateFunded, resp.Campaign.State)

	require.NotNil(t, got)
	assert.Equal(t, []domain.Transfer{
		{Kind: domain.TransferPayout, From: domain.EscrowAccount, To: influencer, Amount: 2250},
		{Kind: domain.TransferFee, From: domain.EscrowAccount, To: treasury, Amount: 750},
	}, got.Transfers)
	assert.Equal(t, []int{1}, got.Event.Milestones)
}

// TestConcurrentReleases ensures parallel release calls pay each milestone
// exactly once.
func TestConcurrentReleases(t *testing.T) {
	svc, _ := newLedger(t)
	ctx := context.Background()
	c := createCampaign(t, svc, unit, unit, unit)
	_, err := svc.DepositFunds(ctx, brand, c.ID, 3*unit)
	require.NoError(t, err)
	for i := range 3 {
		approve(t, svc, c.ID, i)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		released  int64
		successes int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.ReleaseFunds(ctx, brand, c.ID)
			if err != nil {
				return
			}
			mu.Lock()
			released += resp.GrossAmount
			successes++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, int64(3*unit), released)
	assert.Equal(t, int64(2_700_000), balance(t, svc, influencer))
}
