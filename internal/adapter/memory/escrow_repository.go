package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"collab-escrow/internal/core/domain"
	"collab-escrow/internal/core/port"
)

// EscrowRepository implements port.EscrowRepository in process memory.
// Campaigns live in an arena indexed by id. Writers of one campaign are
// serialized by its entry lock while readers load the current snapshot
// without locking, so a transfer hook may read the campaign it is paying
// out of. The event log, transfer log and balances are guarded by the
// commit lock.
//
// Lock order is arena, then campaign, then commit.
type EscrowRepository struct {
	mu        sync.RWMutex
	campaigns []*entry

	commitMu  sync.Mutex
	events    []domain.Event
	transfers []domain.Transfer
	balances  map[string]int64

	now          func() time.Time
	onAppend     func(seq int64)
	transferHook func(ctx context.Context, t domain.Transfer) error
}

type entry struct {
	mu sync.Mutex
	// cur is never modified in place; writers store a fresh copy. It is nil
	// while the campaign is being created and stays nil if creation fails.
	cur atomic.Pointer[domain.Campaign]
}

// Option configures an EscrowRepository.
type Option func(*EscrowRepository)

// WithAppendHook registers fn to be called with the sequence number of
// every appended event, after the mutation is committed.
func WithAppendHook(fn func(seq int64)) Option {
	return func(r *EscrowRepository) { r.onAppend = fn }
}

// WithTransferHook registers fn to carry out each transfer. It runs after
// the new campaign state is stored and before the event is appended. An
// error restores the previous state and aborts the mutation.
func WithTransferHook(fn func(ctx context.Context, t domain.Transfer) error) Option {
	return func(r *EscrowRepository) { r.transferHook = fn }
}

// NewEscrowRepository returns an empty repository.
func NewEscrowRepository(opts ...Option) *EscrowRepository {
	r := &EscrowRepository{
		balances: make(map[string]int64),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateCampaign stores a new campaign under the next id. An id whose
// transfers fail is not reused.
func (r *EscrowRepository) CreateCampaign(ctx context.Context, c *domain.Campaign, fn port.MutateFunc) (*domain.Campaign, *domain.Event, error) {
	r.mu.Lock()
	next := c.Clone()
	next.ID = int64(len(r.campaigns) + 1)
	next.CreatedAt = r.now()
	m, err := fn(next)
	if err == nil && (m == nil || m.Event == nil) {
		err = fmt.Errorf("memory: create campaign: no event")
	}
	var transfers []domain.Transfer
	if err == nil {
		transfers, err = r.prepare(next, m)
	}
	if err != nil {
		r.mu.Unlock()
		return nil, nil, err
	}
	e := &entry{}
	e.mu.Lock()
	defer e.mu.Unlock()
	r.campaigns = append(r.campaigns, e)
	r.mu.Unlock()

	ev, err := r.publish(ctx, e, next, transfers, m.Event)
	if err != nil {
		return nil, nil, err
	}
	return next.Clone(), ev, nil
}

// UpdateCampaign runs fn on a copy of the campaign while holding its lock
// and stores the copy only if every step succeeds.
func (r *EscrowRepository) UpdateCampaign(ctx context.Context, id int64, fn port.MutateFunc) (*domain.Campaign, *domain.Event, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.cur.Load()
	if cur == nil {
		return nil, nil, domain.ErrCampaignNotFound
	}
	next := cur.Clone()
	m, err := fn(next)
	if err != nil {
		return nil, nil, err
	}
	if m == nil || m.Event == nil {
		return cur.Clone(), nil, nil
	}
	transfers, err := r.prepare(next, m)
	if err != nil {
		return nil, nil, err
	}
	ev, err := r.publish(ctx, e, next, transfers, m.Event)
	if err != nil {
		return nil, nil, err
	}
	return next.Clone(), ev, nil
}

// prepare validates the mutated campaign and stamps it and its transfers.
// Nothing shared is touched.
func (r *EscrowRepository) prepare(c *domain.Campaign, m *port.Mutation) ([]domain.Transfer, error) {
	if err := c.Verify(); err != nil {
		return nil, fmt.Errorf("memory: campaign %d: %w", c.ID, err)
	}
	now := r.now()
	c.UpdatedAt = now
	c.EventSeq++

	transfers := make([]domain.Transfer, len(m.Transfers))
	for i, t := range m.Transfers {
		if t.Amount <= 0 || t.To == "" {
			return nil, fmt.Errorf("memory: invalid %s transfer of %d to %q", t.Kind, t.Amount, t.To)
		}
		t.CampaignID = c.ID
		t.CreatedAt = now
		transfers[i] = t
	}
	return transfers, nil
}

// publish stores c as the current state of e, carries out the transfers
// and then appends them and the event to the shared logs. The caller holds
// e.mu.
func (r *EscrowRepository) publish(ctx context.Context, e *entry, c *domain.Campaign, transfers []domain.Transfer, event *domain.Event) (*domain.Event, error) {
	prev := e.cur.Swap(c)
	if r.transferHook != nil {
		for _, t := range transfers {
			if err := r.transferHook(ctx, t); err != nil {
				e.cur.Store(prev)
				return nil, fmt.Errorf("memory: transfer %s: %w", t.Kind, err)
			}
		}
	}

	r.commitMu.Lock()
	for i := range transfers {
		transfers[i].ID = int64(len(r.transfers) + i + 1)
		if transfers[i].Credits() {
			r.balances[transfers[i].To] += transfers[i].Amount
		}
	}
	r.transfers = append(r.transfers, transfers...)

	ev := *event
	ev.Seq = int64(len(r.events) + 1)
	ev.CampaignID = c.ID
	ev.CampaignSeq = c.EventSeq
	ev.CreatedAt = c.UpdatedAt
	r.events = append(r.events, ev)
	r.commitMu.Unlock()

	if r.onAppend != nil {
		r.onAppend(ev.Seq)
	}
	return &ev, nil
}

func (r *EscrowRepository) entry(id int64) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 1 || id > int64(len(r.campaigns)) {
		return nil, domain.ErrCampaignNotFound
	}
	return r.campaigns[id-1], nil
}

// snapshot returns the stored campaigns in id order.
func (r *EscrowRepository) snapshot() []*domain.Campaign {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Campaign, 0, len(r.campaigns))
	for _, e := range r.campaigns {
		if c := e.cur.Load(); c != nil {
			result = append(result, c)
		}
	}
	return result
}

// GetCampaign returns a copy of the campaign.
func (r *EscrowRepository) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	e, err := r.entry(id)
	if err != nil {
		return nil, err
	}
	c := e.cur.Load()
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return c.Clone(), nil
}

// ListCampaigns returns campaigns where identity is funder or deliverer,
// ordered by id.
func (r *EscrowRepository) ListCampaigns(_ context.Context, identity string) ([]domain.Campaign, error) {
	result := make([]domain.Campaign, 0)
	for _, c := range r.snapshot() {
		if c.Funder == identity || c.Deliverer == identity {
			result = append(result, *c.Clone())
		}
	}
	return result, nil
}

// ListEvents returns events after req.AfterSeq in sequence order.
func (r *EscrowRepository) ListEvents(_ context.Context, req port.EventsReq) ([]domain.Event, error) {
	r.commitMu.Lock()
	defer r.commitMu.Unlock()

	start := min(max(req.AfterSeq, 0), int64(len(r.events)))
	result := make([]domain.Event, 0)
	for _, ev := range r.events[start:] {
		if req.CampaignID != nil && ev.CampaignID != *req.CampaignID {
			continue
		}
		result = append(result, ev)
		if req.Limit > 0 && len(result) == req.Limit {
			break
		}
	}
	return result, nil
}

// Transfers returns the transfers recorded for a campaign.
func (r *EscrowRepository) Transfers(campaignID int64) []domain.Transfer {
	r.commitMu.Lock()
	defer r.commitMu.Unlock()

	var result []domain.Transfer
	for _, t := range r.transfers {
		if t.CampaignID == campaignID {
			result = append(result, t)
		}
	}
	return result
}

// Balance returns the credited balance of identity.
func (r *EscrowRepository) Balance(_ context.Context, identity string) (int64, error) {
	r.commitMu.Lock()
	defer r.commitMu.Unlock()
	return r.balances[identity], nil
}

// Reputation sums the reputation of campaigns delivered by identity.
func (r *EscrowRepository) Reputation(_ context.Context, identity string) (int64, error) {
	var score int64
	for _, c := range r.snapshot() {
		if c.Deliverer == identity {
			score += c.ReputationScore
		}
	}
	return score, nil
}
