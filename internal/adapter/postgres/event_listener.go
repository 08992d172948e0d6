package postgres

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/lib/pq"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPing         = 90 * time.Second
)

// EventListener receives the NOTIFY messages sent for every appended event.
// The pgx pool is used for transactions; the listener keeps a dedicated
// lib/pq connection because it reconnects and re-subscribes on its own.
type EventListener struct {
	listener *pq.Listener
	logger   *slog.Logger
}

// NewEventListener subscribes to EventChannel on the database at dsn.
func NewEventListener(dsn string, logger *slog.Logger) (*EventListener, error) {
	l := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("event listener connection", slog.Int("event", int(ev)), slog.Any("error", err))
		}
	})
	if err := l.Listen(EventChannel); err != nil {
		_ = l.Close()
		return nil, err
	}
	return &EventListener{listener: l, logger: logger}, nil
}

// Run calls fn with the seq of every notified event until ctx is done.
// After a reconnect notifications may have been lost, so fn is called with
// zero to make subscribers re-read the log.
func (l *EventListener) Run(ctx context.Context, fn func(seq int64)) error {
	defer l.listener.Close()
	ping := time.NewTicker(listenerPing)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case n := <-l.listener.Notify:
			if n == nil {
				fn(0)
				continue
			}
			seq, err := strconv.ParseInt(n.Extra, 10, 64)
			if err != nil {
				l.logger.Warn("malformed event notification", slog.String("payload", n.Extra))
				fn(0)
				continue
			}
			fn(seq)
		case <-ping.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.Warn("event listener ping", slog.Any("error", err))
			}
		}
	}
}
