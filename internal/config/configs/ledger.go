package configs

import "time"

// Ledger configures the escrow ledger. Treasury is the identity credited
// with the fee of every release. Store selects the repository backend:
// "postgres" (default) or "memory", which keeps all state in process and
// is meant for local runs and demos.
type Ledger struct {
	Treasury string `env:"TREASURY" envDefault:"treasury"`
	Store    string `env:"STORE" envDefault:"postgres"`
	// StreamPoll is the longest an event stream subscriber waits without
	// a notification before it re-reads the event log.
	StreamPoll time.Duration `env:"STREAM_POLL" envDefault:"5s"`
}

// UseMemory reports whether the in-memory store is selected.
func (c Ledger) UseMemory() bool {
	return c.Store == "memory"
}
