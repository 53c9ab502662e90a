// Package store persists the conversation snapshot. The contract is a
// single named slot per installation, last-write-wins: there is exactly one
// logical writer, so no coordination beyond the database's own locking is
// needed.
package store

import (
	"context"

	"github.com/avelis/coachflow/internal/domain"
)

// MaxStoredMessages bounds the persisted message window. Older messages are
// dropped first when saving.
const MaxStoredMessages = 50

// SnapshotStore reads and writes the single persisted snapshot slot.
type SnapshotStore interface {
	// Load returns the stored snapshot, or (nil, nil) when the slot is
	// missing or unreadable — a corrupt slot is treated as no prior state.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save serializes the snapshot into the slot, truncating the message
	// list to the most recent MaxStoredMessages entries first.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Close releases the underlying storage.
	Close() error
}
