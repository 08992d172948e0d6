package domain

import (
	"time"
)

// EventType identifies the state transition an event records.
type EventType string

const (
	EventCampaignCreated   EventType = "campaign_created"
	EventFundsDeposited    EventType = "funds_deposited"
	EventProofSubmitted    EventType = "proof_submitted"
	EventMilestoneApproved EventType = "milestone_approved"
	EventFundsReleased     EventType = "funds_released"
	EventCampaignCancelled EventType = "campaign_cancelled"
)

// Event is one entry of the append-only ledger log. Seq is global and
// strictly increasing; CampaignSeq counts events of a single campaign.
// Only the fields relevant to Type are set.
type Event struct {
	Seq         int64     `json:"seq"`
	CampaignID  int64     `json:"campaign_id"`
	CampaignSeq int64     `json:"campaign_seq"`
	Type        EventType `json:"type"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`

	Funder         string `json:"funder,omitempty"`
	Deliverer      string `json:"deliverer,omitempty"`
	MilestoneIndex *int   `json:"milestone_index,omitempty"`
	Proof          string `json:"proof,omitempty"`
	Milestones     []int  `json:"milestones,omitempty"`

	// Amounts and the fee rate are always encoded, zero included.
	TotalAmount     int64 `json:"total_amount"`
	FeeRateBps      int64 `json:"fee_rate_bps"`
	Amount          int64 `json:"amount"`
	GrossAmount     int64 `json:"gross_amount"`
	DelivererAmount int64 `json:"deliverer_amount"`
	FeeAmount       int64 `json:"fee_amount"`
	RefundedAmount  int64 `json:"refunded_amount"`
}

// TransferKind classifies a custody movement.
type TransferKind string

const (
	TransferDeposit TransferKind = "deposit"
	TransferPayout  TransferKind = "payout"
	TransferFee     TransferKind = "fee"
	TransferRefund  TransferKind = "refund"
)

// EscrowAccount is the pseudo account that holds deposited funds.
const EscrowAccount = "escrow"

// Transfer is a fund movement that must be applied in the same atomic unit
// as the state change that caused it.
type Transfer struct {
	ID         int64        `json:"id"`
	CampaignID int64        `json:"campaign_id"`
	Kind       TransferKind `json:"kind"`
	From       string       `json:"from"`
	To         string       `json:"to"`
	Amount     int64        `json:"amount"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Credits reports whether the transfer credits the balance of To.
// Deposits move funds into escrow and are tracked on the campaign instead.
func (t Transfer) Credits() bool {
	return t.Kind != TransferDeposit && t.Amount > 0
}
