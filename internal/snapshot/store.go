// Package snapshot provides durable storage backends for the in-progress
// response map. One snapshot lives under one fixed key; every save overwrites
// the previous one (last-write-wins, whole map, never a per-key delta).
package snapshot

import (
	"context"

	"formwizard/api/internal/schema"
)

// Store persists and restores response snapshots.
//
// Load returns false when no snapshot exists. Stored data that no longer
// parses is also reported as absent, never as an error: corrupt local state
// must not break startup.
type Store interface {
	Save(ctx context.Context, responses schema.Responses) error
	Load(ctx context.Context) (schema.Responses, bool, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
