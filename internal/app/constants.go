package app

import "time"

const (
	// DefaultSeatTokenTTL is how long a seat token can reclaim a seat.
	DefaultSeatTokenTTL = time.Hour

	// DefaultSeatTokenIssuer is used when no issuer is configured.
	DefaultSeatTokenIssuer = "mighty"
)
