package port

import (
	"context"

	"collab-escrow/internal/core/domain"
)

// Mutation is what a ledger operation produces after it has updated a
// campaign: the event to append and the transfers to apply. A nil Event
// means the operation changed nothing and the repository discards it.
type Mutation struct {
	Event     *domain.Event
	Transfers []domain.Transfer
}

// MutateFunc updates c in place. c is a private copy; when MutateFunc
// returns an error, or when any later persistence step fails, the copy is
// discarded and the stored campaign is unchanged.
type MutateFunc func(c *domain.Campaign) (*Mutation, error)

// EscrowRepository defines the persistence layer for the ledger. It is an
// outbound port in hexagonal architecture. Implementations must serialize
// mutations per campaign and apply the campaign update, its transfers and
// its event as one atomic unit, in that order.
type EscrowRepository interface {
	// CreateCampaign assigns c.ID and stores c together with the mutation
	// fn returns.
	CreateCampaign(ctx context.Context, c *domain.Campaign, fn MutateFunc) (*domain.Campaign, *domain.Event, error)
	// UpdateCampaign runs fn with exclusive access to the campaign and
	// stores the result atomically.
	UpdateCampaign(ctx context.Context, id int64, fn MutateFunc) (*domain.Campaign, *domain.Event, error)
	// GetCampaign returns a campaign by id or domain.ErrCampaignNotFound.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListCampaigns returns campaigns where identity is funder or deliverer.
	ListCampaigns(ctx context.Context, identity string) ([]domain.Campaign, error)
	// ListEvents returns events in ascending Seq order.
	ListEvents(ctx context.Context, req EventsReq) ([]domain.Event, error)
	// Balance returns the credited balance of an account.
	Balance(ctx context.Context, identity string) (int64, error)
	// Reputation sums the reputation score of campaigns delivered by identity.
	Reputation(ctx context.Context, identity string) (int64, error)
}
