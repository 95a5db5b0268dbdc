package store

import (
	"context"

	"inventory/internal/core"
)

// Ports for outbound persistence adapters.
type (
	// Snapshotter mirrors the two collections to durable storage. Load
	// treats a missing key as an empty collection; a malformed payload is
	// reported with an error wrapping core.ErrCorruptData while still
	// returning whatever could be recovered, so the caller can warn and
	// continue.
	Snapshotter interface {
		Load(ctx context.Context) (rooms []core.Room, items []core.Item, err error)
		Save(ctx context.Context, rooms []core.Room, items []core.Item) error
	}
)
