package configs

import "time"

// HTTP configures the ledger API server.
type HTTP struct {
	// Port is the TCP port the API listens on.
	Port uint16 `env:"PORT" envDefault:"8080"`

	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`

	// ShutdownTimeout bounds how long in-flight requests and event streams
	// are given to finish after a termination signal.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
