package domain

import "fmt"

// milestone returns a pointer to milestone i or ErrInvalidMilestoneIndex.
func (c *Campaign) milestone(i int) (*Milestone, error) {
	if i < 0 || i >= len(c.Milestones) {
		return nil, ErrInvalidMilestoneIndex
	}
	return &c.Milestones[i], nil
}

// Milestone returns a copy of milestone i.
func (c *Campaign) Milestone(i int) (Milestone, error) {
	m, err := c.milestone(i)
	if err != nil {
		return Milestone{}, err
	}
	return *m, nil
}

// SubmitProof sets or replaces the proof of an unpaid milestone.
func (c *Campaign) SubmitProof(i int, proof string) error {
	if c.State.Terminal() {
		return ErrInvalidState
	}
	m, err := c.milestone(i)
	if err != nil {
		return err
	}
	if m.Paid {
		return ErrMilestoneAlreadyPaid
	}
	if proof == "" {
		return ErrInvalidProof
	}
	m.Proof = proof
	return nil
}

// Approve marks milestone i approved. It reports false when the milestone
// was already approved and nothing changed.
func (c *Campaign) Approve(i int) (bool, error) {
	if c.State.Terminal() {
		return false, ErrInvalidState
	}
	m, err := c.milestone(i)
	if err != nil {
		return false, err
	}
	if m.Paid {
		return false, ErrMilestoneAlreadyPaid
	}
	if m.Proof == "" {
		return false, ErrMilestoneProofMissing
	}
	if m.Approved {
		return false, nil
	}
	m.Approved = true
	return true, nil
}

// Releasable returns the indexes of approved and unpaid milestones in
// ascending order.
func (c *Campaign) Releasable() []int {
	var idx []int
	for i, m := range c.Milestones {
		if m.Approved && !m.Paid {
			idx = append(idx, i)
		}
	}
	return idx
}

// AllPaid reports whether every milestone has been paid.
func (c *Campaign) AllPaid() bool {
	for _, m := range c.Milestones {
		if !m.Paid {
			return false
		}
	}
	return len(c.Milestones) > 0
}

// Verify checks the accounting and milestone invariants of the campaign.
func (c *Campaign) Verify() error {
	var total, paid int64
	for i, m := range c.Milestones {
		if m.Amount <= 0 {
			return fmt.Errorf("milestone %d: non-positive amount %d", i, m.Amount)
		}
		if m.Approved && m.Proof == "" {
			return fmt.Errorf("milestone %d: approved without proof", i)
		}
		if m.Paid && !m.Approved {
			return fmt.Errorf("milestone %d: paid without approval", i)
		}
		total += m.Amount
		if m.Paid {
			paid += m.Amount
		}
	}
	if total != c.TotalMilestoneAmount {
		return fmt.Errorf("milestone sum %d != total %d", total, c.TotalMilestoneAmount)
	}
	if paid != c.TotalReleased {
		return fmt.Errorf("paid sum %d != released %d", paid, c.TotalReleased)
	}
	if c.TotalReleased > c.TotalEscrowed {
		return fmt.Errorf("released %d exceeds escrowed %d", c.TotalReleased, c.TotalEscrowed)
	}
	if (c.State == StateCompleted) != c.AllPaid() {
		return fmt.Errorf("state %s inconsistent with milestone payment", c.State)
	}
	if c.State == StateCancelled && c.TotalReleased != 0 {
		return fmt.Errorf("cancelled after release of %d", c.TotalReleased)
	}
	return nil
}
