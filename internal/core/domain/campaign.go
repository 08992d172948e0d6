package domain

import (
	"slices"
	"time"
)

// State is the lifecycle state of a campaign.
type State string

const (
	StateCreated   State = "created"
	StateFunded    State = "funded"
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Terminal reports whether no further writes are accepted in this state.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Campaign is a paid collaboration between a funder and a deliverer whose
// funds are held in escrow and paid out per milestone.
// Amounts are stored in integer currency units (e.g. cents).
type Campaign struct {
	ID                   int64       `json:"id"`
	Funder               string      `json:"funder"`
	Deliverer            string      `json:"deliverer"`
	Milestones           []Milestone `json:"milestones"`
	TotalMilestoneAmount int64       `json:"total_milestone_amount"`
	TotalEscrowed        int64       `json:"total_escrowed"`
	TotalReleased        int64       `json:"total_released"`
	RefundedAmount       int64       `json:"refunded_amount"`
	FeeRateBps           int64       `json:"fee_rate_bps"`
	ReputationScore      int64       `json:"reputation_score"`
	State                State       `json:"state"`
	EventSeq             int64       `json:"event_seq"` // events emitted for this campaign
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// Milestone is one deliverable with a fixed payment amount.
type Milestone struct {
	Amount   int64  `json:"amount"`
	Proof    string `json:"proof"`
	Approved bool   `json:"approved"`
	Paid     bool   `json:"paid"`
}

// NewCampaign validates the creation inputs and returns a campaign in the
// created state. The ID is assigned by the repository.
func NewCampaign(funder, deliverer string, amounts []int64, feeRateBps int64) (*Campaign, error) {
	if funder == "" || deliverer == "" || funder == deliverer {
		return nil, ErrInvalidParticipants
	}
	if len(amounts) == 0 {
		return nil, ErrInvalidMilestoneList
	}
	if feeRateBps < 0 || feeRateBps > MaxFeeRateBps {
		return nil, ErrInvalidFeeRate
	}
	var total int64
	milestones := make([]Milestone, len(amounts))
	for i, amount := range amounts {
		if amount <= 0 || total > maxAmount-amount {
			return nil, ErrInvalidMilestoneList
		}
		total += amount
		milestones[i] = Milestone{Amount: amount}
	}
	return &Campaign{
		Funder:               funder,
		Deliverer:            deliverer,
		Milestones:           milestones,
		TotalMilestoneAmount: total,
		FeeRateBps:           feeRateBps,
		State:                StateCreated,
	}, nil
}

// Clone returns a deep copy so a mutation can be discarded on failure.
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Milestones = slices.Clone(c.Milestones)
	return &cp
}

// Available is the escrowed balance not yet released.
func (c *Campaign) Available() int64 {
	return c.TotalEscrowed - c.TotalReleased
}

// Deposit adds funds to the escrow. The first deposit moves the campaign
// into the funded state.
func (c *Campaign) Deposit(amount int64) error {
	if c.State.Terminal() {
		return ErrInvalidState
	}
	if amount <= 0 || c.TotalEscrowed > maxAmount-amount {
		return ErrInvalidAmount
	}
	c.TotalEscrowed += amount
	if c.State == StateCreated {
		c.State = StateFunded
	}
	return nil
}

// Release pays out every approved and unpaid milestone. It returns the
// released indexes and the split amounts. On error the campaign is left
// untouched.
func (c *Campaign) Release() (Payout, error) {
	if c.State.Terminal() {
		return Payout{}, ErrInvalidState
	}
	idx := c.Releasable()
	if len(idx) == 0 {
		return Payout{}, ErrNothingToRelease
	}
	var gross int64
	for _, i := range idx {
		gross += c.Milestones[i].Amount
	}
	if c.Available() < gross {
		return Payout{}, ErrInsufficientEscrow
	}
	recipient, fee := Split(gross, c.FeeRateBps)
	for _, i := range idx {
		c.Milestones[i].Paid = true
	}
	c.TotalReleased += gross
	if c.AllPaid() {
		c.State = StateCompleted
		c.ReputationScore++
	}
	return Payout{
		Milestones:      idx,
		Gross:           gross,
		DelivererAmount: recipient,
		FeeAmount:       fee,
	}, nil
}

// Cancel closes the campaign and returns the amount to refund to the funder.
func (c *Campaign) Cancel() (int64, error) {
	if c.State.Terminal() {
		return 0, ErrInvalidState
	}
	if c.TotalReleased > 0 {
		return 0, ErrCannotCancelAfterRelease
	}
	refund := c.TotalEscrowed
	c.RefundedAmount = refund
	c.TotalEscrowed = 0
	c.State = StateCancelled
	return refund, nil
}

// Payout is the result of one release.
type Payout struct {
	Milestones      []int
	Gross           int64
	DelivererAmount int64
	FeeAmount       int64
}
