package ports

import "context"

// AccountPort resolves player identities for seat display.
type AccountPort interface {
	// DisplayName returns the display name of userID, falling back to the username.
	DisplayName(ctx context.Context, userID string) (string, error)
}
