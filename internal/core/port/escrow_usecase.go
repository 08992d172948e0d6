package port

import (
	"context"

	"collab-escrow/internal/core/domain"
)

// EscrowUseCase defines the ledger operations exposed to callers. This
// interface represents the primary port into the application domain. Every
// write takes the already authenticated caller identity and either applies
// completely, emitting exactly one event, or returns an error with no
// effect. Mock implementations can be generated from this interface for
// testing.
type EscrowUseCase interface {
	// CreateCampaign registers a new campaign funded by the caller.
	CreateCampaign(ctx context.Context, caller string, req CreateCampaignReq) (*domain.Campaign, error)
	// DepositFunds adds escrow to a campaign. Funder only.
	DepositFunds(ctx context.Context, caller string, campaignID, amount int64) (*domain.Campaign, error)
	// SubmitProof attaches proof of delivery to a milestone. Deliverer only.
	SubmitProof(ctx context.Context, caller string, campaignID int64, index int, proof string) (*domain.Campaign, error)
	// ApproveMilestone approves a milestone that has proof. Funder only.
	ApproveMilestone(ctx context.Context, caller string, campaignID int64, index int) (*domain.Campaign, error)
	// ReleaseFunds pays every approved and unpaid milestone. Funder only.
	ReleaseFunds(ctx context.Context, caller string, campaignID int64) (*ReleaseResp, error)
	// CancelCampaign refunds the escrow to the funder. Either party.
	CancelCampaign(ctx context.Context, caller string, campaignID int64) (*domain.Campaign, error)

	GetCampaign(ctx context.Context, campaignID int64) (*domain.Campaign, error)
	GetMilestone(ctx context.Context, campaignID int64, index int) (*domain.Milestone, error)
	ListCampaigns(ctx context.Context, identity string) ([]domain.Campaign, error)
	ListEvents(ctx context.Context, req EventsReq) ([]domain.Event, error)
	GetBalance(ctx context.Context, identity string) (int64, error)
	GetReputation(ctx context.Context, identity string) (int64, error)
}

// CreateCampaignReq carries the terms produced by negotiation.
type CreateCampaignReq struct {
	Deliverer        string  `json:"deliverer"`
	MilestoneAmounts []int64 `json:"milestone_amounts"`
	FeeRateBps       int64   `json:"fee_rate_bps"`
}

// ReleaseResp reports the result of a release together with the updated
// campaign.
type ReleaseResp struct {
	Campaign        *domain.Campaign `json:"campaign"`
	Milestones      []int            `json:"milestones"`
	GrossAmount     int64            `json:"gross_amount"`
	DelivererAmount int64            `json:"deliverer_amount"`
	FeeAmount       int64            `json:"fee_amount"`
}

// EventsReq selects ledger events with Seq greater than AfterSeq, optionally
// restricted to one campaign. Limit <= 0 means the default page size.
type EventsReq struct {
	AfterSeq   int64
	CampaignID *int64
	Limit      int
}
