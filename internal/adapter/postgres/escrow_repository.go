package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"collab-escrow/internal/core/domain"
	"collab-escrow/internal/core/port"
)

// EventChannel is the NOTIFY channel that carries the seq of every
// appended event.
const EventChannel = "escrow_events"

// eventLogLock is the advisory lock key held while appending an event so
// that event seq order matches commit order.
const eventLogLock = 0x65736372

// EscrowRepository implements port.EscrowRepository using pgxpool for
// PostgreSQL. Every mutation runs in one transaction that holds the
// campaign row lock until commit.
type EscrowRepository struct {
	pool *pgxpool.Pool
}

// NewEscrowRepository returns a new repository instance.
func NewEscrowRepository(pool *pgxpool.Pool) *EscrowRepository {
	return &EscrowRepository{pool: pool}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// inTx runs fn in a read committed transaction, committing when fn
// succeeds and rolling back otherwise.
func (r *EscrowRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	return fn(tx)
}

// CreateCampaign inserts the campaign and its milestones, then applies the
// creation mutation in the same transaction.
func (r *EscrowRepository) CreateCampaign(ctx context.Context, c *domain.Campaign, fn port.MutateFunc) (*domain.Campaign, *domain.Event, error) {
	next := c.Clone()
	var ev *domain.Event
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `INSERT INTO campaigns
    (funder, deliverer, total_milestone_amount, fee_rate_bps, state, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,now(),now()) RETURNING id, created_at`,
			next.Funder, next.Deliverer, next.TotalMilestoneAmount, next.FeeRateBps, next.State).
			Scan(&next.ID, &next.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert campaign: %w", err)
		}
		batch := &pgx.Batch{}
		for i, m := range next.Milestones {
			batch.Queue(`INSERT INTO milestones (campaign_id, idx, amount) VALUES ($1,$2,$3)`, next.ID, i, m.Amount)
		}
		if err = tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert milestones: %w", err)
		}
		m, err := fn(next)
		if err != nil {
			return err
		}
		if m == nil || m.Event == nil {
			return errors.New("create campaign: no event")
		}
		ev, err = r.apply(ctx, tx, next, m)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return next, ev, nil
}

// UpdateCampaign locks the campaign row, runs fn on a copy and writes the
// result. A mutation without an event is rolled back.
func (r *EscrowRepository) UpdateCampaign(ctx context.Context, id int64, fn port.MutateFunc) (*domain.Campaign, *domain.Event, error) {
	var (
		result *domain.Campaign
		ev     *domain.Event
	)
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		cur, err := r.getCampaign(ctx, tx, id, true)
		if err != nil {
			return err
		}
		next := cur.Clone()
		m, err := fn(next)
		if err != nil {
			return err
		}
		if m == nil || m.Event == nil {
			result = cur
			return nil
		}
		ev, err = r.apply(ctx, tx, next, m)
		if err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, ev, nil
}

// apply writes the campaign, then its transfers, then the event.
func (r *EscrowRepository) apply(ctx context.Context, tx pgx.Tx, c *domain.Campaign, m *port.Mutation) (*domain.Event, error) {
	if err := c.Verify(); err != nil {
		return nil, fmt.Errorf("campaign %d: %w", c.ID, err)
	}
	now := time.Now().UTC()
	c.UpdatedAt = now
	c.EventSeq++

	_, err := tx.Exec(ctx, `UPDATE campaigns SET total_escrowed = $2, total_released = $3, refunded_amount = $4,
    reputation_score = $5, state = $6, event_seq = $7, updated_at = $8 WHERE id = $1`,
		c.ID, c.TotalEscrowed, c.TotalReleased, c.RefundedAmount, c.ReputationScore, c.State, c.EventSeq, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	batch := &pgx.Batch{}
	for i, ms := range c.Milestones {
		batch.Queue(`UPDATE milestones SET proof = $3, approved = $4, paid = $5 WHERE campaign_id = $1 AND idx = $2`,
			c.ID, i, ms.Proof, ms.Approved, ms.Paid)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("update milestones: %w", err)
	}

	for _, t := range m.Transfers {
		if t.Amount <= 0 || t.To == "" {
			return nil, fmt.Errorf("invalid %s transfer of %d to %q", t.Kind, t.Amount, t.To)
		}
		_, err = tx.Exec(ctx, `INSERT INTO transfers (campaign_id, kind, from_account, to_account, amount, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`, c.ID, t.Kind, t.From, t.To, t.Amount, now)
		if err != nil {
			return nil, fmt.Errorf("insert transfer: %w", err)
		}
		if !t.Credits() {
			continue
		}
		_, err = tx.Exec(ctx, `INSERT INTO balances (account, amount) VALUES ($1,$2)
ON CONFLICT (account) DO UPDATE SET amount = balances.amount + EXCLUDED.amount`, t.To, t.Amount)
		if err != nil {
			return nil, fmt.Errorf("credit %s: %w", t.To, err)
		}
	}

	ev := *m.Event
	ev.CampaignID = c.ID
	ev.CampaignSeq = c.EventSeq
	ev.CreatedAt = now
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, eventLogLock); err != nil {
		return nil, fmt.Errorf("lock event log: %w", err)
	}
	err = tx.QueryRow(ctx, `INSERT INTO events (campaign_id, campaign_seq, type, actor, data, created_at)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING seq`, ev.CampaignID, ev.CampaignSeq, ev.Type, ev.Actor, data, ev.CreatedAt).Scan(&ev.Seq)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	if _, err = tx.Exec(ctx, `SELECT pg_notify($1, $2)`, EventChannel, strconv.FormatInt(ev.Seq, 10)); err != nil {
		return nil, fmt.Errorf("notify event: %w", err)
	}
	return &ev, nil
}

const campaignColumns = `id, funder, deliverer, total_milestone_amount, total_escrowed, total_released,
    refunded_amount, fee_rate_bps, reputation_score, state, event_seq, created_at, updated_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.Funder, &c.Deliverer, &c.TotalMilestoneAmount, &c.TotalEscrowed, &c.TotalReleased,
		&c.RefundedAmount, &c.FeeRateBps, &c.ReputationScore, &c.State, &c.EventSeq, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *EscrowRepository) getCampaign(ctx context.Context, q querier, id int64, forUpdate bool) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	c, err := scanCampaign(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, `SELECT amount, proof, approved, paid FROM milestones WHERE campaign_id = $1 ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	c.Milestones, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Milestone, error) {
		var m domain.Milestone
		err := row.Scan(&m.Amount, &m.Proof, &m.Approved, &m.Paid)
		return m, err
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCampaign returns a campaign by id.
func (r *EscrowRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	return r.getCampaign(ctx, r.pool, id, false)
}

// ListCampaigns returns campaigns where identity is funder or deliverer.
func (r *EscrowRepository) ListCampaigns(ctx context.Context, identity string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns
WHERE funder = $1 OR deliverer = $1 ORDER BY id`, identity)
	if err != nil {
		return nil, err
	}
	campaigns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
	if err != nil {
		return nil, err
	}
	if len(campaigns) == 0 {
		return campaigns, nil
	}
	ids := make([]int64, len(campaigns))
	byID := make(map[int64]*domain.Campaign, len(campaigns))
	for i := range campaigns {
		ids[i] = campaigns[i].ID
		byID[campaigns[i].ID] = &campaigns[i]
	}
	rows, err = r.pool.Query(ctx, `SELECT campaign_id, amount, proof, approved, paid FROM milestones
WHERE campaign_id = ANY($1) ORDER BY campaign_id, idx`, ids)
	if err != nil {
		return nil, err
	}
	_, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (struct{}, error) {
		var (
			id int64
			m  domain.Milestone
		)
		if err := row.Scan(&id, &m.Amount, &m.Proof, &m.Approved, &m.Paid); err != nil {
			return struct{}{}, err
		}
		c := byID[id]
		c.Milestones = append(c.Milestones, m)
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ListEvents returns events after req.AfterSeq in sequence order.
func (r *EscrowRepository) ListEvents(ctx context.Context, req port.EventsReq) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT seq, campaign_id, campaign_seq, type, actor, data, created_at FROM events
WHERE seq > $1 AND ($2::bigint IS NULL OR campaign_id = $2) ORDER BY seq LIMIT $3`, req.AfterSeq, req.CampaignID, req.Limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Event, error) {
		var (
			ev   domain.Event
			data []byte
		)
		if err := row.Scan(&ev.Seq, &ev.CampaignID, &ev.CampaignSeq, &ev.Type, &ev.Actor, &data, &ev.CreatedAt); err != nil {
			return ev, err
		}
		seq, campaignSeq, createdAt := ev.Seq, ev.CampaignSeq, ev.CreatedAt
		if err := json.Unmarshal(data, &ev); err != nil {
			return ev, fmt.Errorf("event %d: %w", seq, err)
		}
		ev.Seq, ev.CampaignSeq, ev.CreatedAt = seq, campaignSeq, createdAt
		return ev, nil
	})
}

// Balance returns the credited balance of an account, zero if unknown.
func (r *EscrowRepository) Balance(ctx context.Context, identity string) (int64, error) {
	var amount int64
	err := r.pool.QueryRow(ctx, `SELECT amount FROM balances WHERE account = $1`, identity).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return amount, err
}

// Reputation sums the reputation of campaigns delivered by identity.
func (r *EscrowRepository) Reputation(ctx context.Context, identity string) (int64, error) {
	var score int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(sum(reputation_score), 0) FROM campaigns WHERE deliverer = $1`, identity).Scan(&score)
	return score, err
}
