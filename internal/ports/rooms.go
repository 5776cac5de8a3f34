package ports

import "context"

// RoomInfo summarizes one open table.
type RoomInfo struct {
	MatchID string
	Seated  int
	Open    bool
	Phase   string
}

// RoomDirectory finds and creates tables.
type RoomDirectory interface {
	// FindOpen returns the id of a table with a free seat, or "" when none exists.
	FindOpen(ctx context.Context) (string, error)
	// Create starts a new empty table and returns its id.
	Create(ctx context.Context) (string, error)
	// List returns up to limit tables.
	List(ctx context.Context, limit int) ([]RoomInfo, error)
}
