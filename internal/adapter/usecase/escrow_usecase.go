package usecase

import (
	"context"
	"log/slog"

	"collab-escrow/internal/core/domain"
	"collab-escrow/internal/core/port"
)

const (
	defaultEventsLimit = 100
	maxEventsLimit     = 1000
)

// EscrowUseCase is the escrow ledger. It enforces the campaign state
// machine and authorization, computes fee splits and hands every change to
// the repository as a single mutation so it is applied atomically.
type EscrowUseCase struct {
	repo   port.EscrowRepository
	logger *slog.Logger

	// treasury is the identity credited with the fee of every release.
	treasury string
}

// NewEscrowUseCase creates a new usecase with the provided repository,
// treasury identity and logger.
func NewEscrowUseCase(repo port.EscrowRepository, treasury string, logger *slog.Logger) *EscrowUseCase {
	return &EscrowUseCase{repo: repo, treasury: treasury, logger: logger}
}

// CreateCampaign validates the terms and stores a new campaign with the
// caller as funder.
func (u *EscrowUseCase) CreateCampaign(ctx context.Context, caller string, req port.CreateCampaignReq) (*domain.Campaign, error) {
	if caller == "" {
		return nil, u.record(ctx, domain.OpCreate, caller, 0, domain.ErrUnauthorized)
	}
	c, err := domain.NewCampaign(caller, req.Deliverer, req.MilestoneAmounts, req.FeeRateBps)
	if err != nil {
		return nil, u.record(ctx, domain.OpCreate, caller, 0, err)
	}
	c, _, err = u.repo.CreateCampaign(ctx, c, func(c *domain.Campaign) (*port.Mutation, error) {
		if err := domain.Authorize(caller, domain.OpCreate, c); err != nil {
			return nil, err
		}
		return &port.Mutation{Event: &domain.Event{
			Type:        domain.EventCampaignCreated,
			Actor:       caller,
			Funder:      c.Funder,
			Deliverer:   c.Deliverer,
			TotalAmount: c.TotalMilestoneAmount,
			FeeRateBps:  c.FeeRateBps,
		}}, nil
	})
	if err != nil {
		return nil, u.record(ctx, domain.OpCreate, caller, 0, err)
	}
	return c, u.record(ctx, domain.OpCreate, caller, c.ID, nil)
}

// DepositFunds adds amount to the escrow of a campaign.
func (u *EscrowUseCase) DepositFunds(ctx context.Context, caller string, campaignID, amount int64) (*domain.Campaign, error) {
	c, _, err := u.repo.UpdateCampaign(ctx, campaignID, func(c *domain.Campaign) (*port.Mutation, error) {
		if err := domain.Authorize(caller, domain.OpDeposit, c); err != nil {
			return nil, err
		}
		if err := c.Deposit(amount); err != nil {
			return nil, err
		}
		return &port.Mutation{
			Event: &domain.Event{
				Type:   domain.EventFundsDeposited,
				Actor:  caller,
				Funder: c.Funder,
				Amount: amount,
			},
			Transfers: []domain.Transfer{{
				Kind:   domain.TransferDeposit,
				From:   caller,
				To:     domain.EscrowAccount,
				Amount: amount,
			}},
		}, nil
	})
	return c, u.record(ctx, domain.OpDeposit, caller, campaignID, err)
}

// SubmitProof sets the proof of an unpaid milestone, replacing an earlier one.
func (u *EscrowUseCase) SubmitProof(ctx context.Context, caller string, campaignID int64, index int, proof string) (*domain.Campaign, error) {
	c, _, err := u.repo.UpdateCampaign(ctx, campaignID, func(c *domain.Campaign) (*port.Mutation, error) {
		if err := domain.Authorize(caller, domain.OpProof, c); err != nil {
			return nil, err
		}
		if err := c.SubmitProof(index, proof); err != nil {
			return nil, err
		}
		return &port.Mutation{Event: &domain.Event{
			Type:           domain.EventProofSubmitted,
			Actor:          caller,
			Deliverer:      c.Deliverer,
			MilestoneIndex: &index,
			Proof:          proof,
		}}, nil
	})
	return c, u.record(ctx, domain.OpProof, caller, campaignID, err)
}

// ApproveMilestone approves a milestone. Approving twice is a no-op.
func (u *EscrowUseCase) ApproveMilestone(ctx context.Context, caller string, campaignID int64, index int) (*domain.Campaign, error) {
	c, _, err := u.repo.UpdateCampaign(ctx, campaignID, func(c *domain.Campaign) (*port.Mutation, error) {
		if err := domain.Authorize(caller, domain.OpApprove, c); err != nil {
			return nil, err
		}
		changed, err := c.Approve(index)
		if err != nil {
			return nil, err
		}
		if !changed {
			return &port.Mutation{}, nil
		}
		return &port.Mutation{Event: &domain.Event{
			Type:           domain.EventMilestoneApproved,
			Actor:          caller,
			Funder:         c.Funder,
			MilestoneIndex: &index,
		}}, nil
	})
	return c, u.record(ctx, domain.OpApprove, caller, campaignID, err)
}

// ReleaseFunds pays every approved and unpaid milestone in one payout,
// splitting the gross amount between the deliverer and the treasury.
func (u *EscrowUseCase) ReleaseFunds(ctx context.Context, caller string, campaignID int64) (*port.ReleaseResp, error) {
	var payout domain.Payout
	c, _, err := u.repo.UpdateCampaign(ctx, campaignID, func(c *domain.Campaign) (*port.Mutation, error) {
		if err := domain.Authorize(caller, domain.OpRelease, c); err != nil {
			return nil, err
		}
		p, err := c.Release()
		if err != nil {
			return nil, err
		}
		payout = p
		var transfers []domain.Transfer
		if p.DelivererAmount > 0 {
			transfers = append(transfers, domain.Transfer{
				Kind:   domain.TransferPayout,
				From:   domain.EscrowAccount,
				To:     c.Deliverer,
				Amount: p.DelivererAmount,
			})
		}
		if p.FeeAmount > 0 {
			transfers = append(transfers, domain.Transfer{
				Kind:   domain.TransferFee,
				From:   domain.EscrowAccount,
				To:     u.treasury,
				Amount: p.FeeAmount,
			})
		}
		return &port.Mutation{
			Event: &domain.Event{
				Type:            domain.EventFundsReleased,
				Actor:           caller,
				Deliverer:       c.Deliverer,
				Milestones:      p.Milestones,
				GrossAmount:     p.Gross,
				DelivererAmount: p.DelivererAmount,
				FeeAmount:       p.FeeAmount,
			},
			Transfers: transfers,
		}, nil
	})
	if err != nil {
		return nil, u.record(ctx, domain.OpRelease, caller, campaignID, err)
	}
	return &port.ReleaseResp{
		Campaign:        c,
		Milestones:      payout.Milestones,
		GrossAmount:     payout.Gross,
		DelivererAmount: payout.DelivererAmount,
		FeeAmount:       payout.FeeAmount,
	}, u.record(ctx, domain.OpRelease, caller, campaignID, nil)
}

// CancelCampaign closes a campaign that has not paid anything yet and
// refunds the whole escrow to the funder.
func (u *EscrowUseCase) CancelCampaign(ctx context.Context, caller string, campaignID int64) (*domain.Campaign, error) {
	c, _, err := u.repo.UpdateCampaign(ctx, campaignID, func(c *domain.Campaign) (*port.Mutation, error) {
		if err := domain.Authorize(caller, domain.OpCancel, c); err != nil {
			return nil, err
		}
		refund, err := c.Cancel()
		if err != nil {
			return nil, err
		}
		m := &port.Mutation{Event: &domain.Event{
			Type:           domain.EventCampaignCancelled,
			Actor:          caller,
			RefundedAmount: refund,
		}}
		if refund > 0 {
			m.Transfers = []domain.Transfer{{
				Kind:   domain.TransferRefund,
				From:   domain.EscrowAccount,
				To:     c.Funder,
				Amount: refund,
			}}
		}
		return m, nil
	})
	return c, u.record(ctx, domain.OpCancel, caller, campaignID, err)
}

// GetCampaign returns the current campaign record.
func (u *EscrowUseCase) GetCampaign(ctx context.Context, campaignID int64) (*domain.Campaign, error) {
	return u.repo.GetCampaign(ctx, campaignID)
}

// GetMilestone returns one milestone of a campaign.
func (u *EscrowUseCase) GetMilestone(ctx context.Context, campaignID int64, index int) (*domain.Milestone, error) {
	c, err := u.repo.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	m, err := c.Milestone(index)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListCampaigns returns the campaigns identity takes part in.
func (u *EscrowUseCase) ListCampaigns(ctx context.Context, identity string) ([]domain.Campaign, error) {
	return u.repo.ListCampaigns(ctx, identity)
}

// ListEvents returns a page of ledger events after req.AfterSeq.
func (u *EscrowUseCase) ListEvents(ctx context.Context, req port.EventsReq) ([]domain.Event, error) {
	if req.Limit <= 0 {
		req.Limit = defaultEventsLimit
	}
	req.Limit = min(req.Limit, maxEventsLimit)
	return u.repo.ListEvents(ctx, req)
}

// GetBalance returns the funds credited to identity by releases and refunds.
func (u *EscrowUseCase) GetBalance(ctx context.Context, identity string) (int64, error) {
	return u.repo.Balance(ctx, identity)
}

// GetReputation returns the number of campaigns identity completed as deliverer.
func (u *EscrowUseCase) GetReputation(ctx context.Context, identity string) (int64, error) {
	return u.repo.Reputation(ctx, identity)
}

// record logs the outcome of a write so that rejected operations remain
// attributable to their caller. It returns err unchanged.
func (u *EscrowUseCase) record(ctx context.Context, op domain.Operation, caller string, campaignID int64, err error) error {
	attrs := []slog.Attr{
		slog.String("op", string(op)),
		slog.String("actor", caller),
		slog.Int64("campaign_id", campaignID),
	}
	if err == nil {
		u.logger.LogAttrs(ctx, slog.LevelInfo, "ledger operation applied", attrs...)
		return nil
	}
	kind := domain.ErrorKind(err)
	level := slog.LevelWarn
	if kind == "internal" {
		level = slog.LevelError
	}
	attrs = append(attrs, slog.String("kind", kind), slog.Any("error", err))
	u.logger.LogAttrs(ctx, level, "ledger operation rejected", attrs...)
	return err
}
