package db

import (
	"context"
	"fmt"

	"collab-escrow/internal/core/port"
)

// Seed creates demo campaigns through the ledger so every seeded record
// satisfies the same rules as live traffic: one funded campaign with a
// submitted proof and one completed campaign.
func Seed(ctx context.Context, svc port.EscrowUseCase) error {
	const (
		brand      = "brand-demo"
		influencer = "influencer-demo"
	)

	open, err := svc.CreateCampaign(ctx, brand, port.CreateCampaignReq{
		Deliverer:        influencer,
		MilestoneAmounts: []int64{50000, 150000},
		FeeRateBps:       1000,
	})
	if err != nil {
		return fmt.Errorf("seed open campaign: %w", err)
	}
	if _, err = svc.DepositFunds(ctx, brand, open.ID, 200000); err != nil {
		return fmt.Errorf("seed deposit: %w", err)
	}
	if _, err = svc.SubmitProof(ctx, influencer, open.ID, 0, "https://example.com/posts/1"); err != nil {
		return fmt.Errorf("seed proof: %w", err)
	}

	done, err := svc.CreateCampaign(ctx, brand, port.CreateCampaignReq{
		Deliverer:        influencer,
		MilestoneAmounts: []int64{30000},
		FeeRateBps:       250,
	})
	if err != nil {
		return fmt.Errorf("seed completed campaign: %w", err)
	}
	steps := []func() error{
		func() error { _, err := svc.DepositFunds(ctx, brand, done.ID, 30000); return err },
		func() error {
			_, err := svc.SubmitProof(ctx, influencer, done.ID, 0, "https://example.com/posts/2")
			return err
		},
		func() error { _, err := svc.ApproveMilestone(ctx, brand, done.ID, 0); return err },
		func() error { _, err := svc.ReleaseFunds(ctx, brand, done.ID); return err },
	}
	for i, step := range steps {
		if err = step(); err != nil {
			return fmt.Errorf("seed completed campaign step %d: %w", i, err)
		}
	}
	return nil
}
