package health

import "context"

// DBPinger checks record store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SessionChecker reports whether the report session has captured its aggregate view.
type SessionChecker interface {
	Initialized() bool
}
