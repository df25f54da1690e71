package storage

import "context"

// Well-known snapshot slots. The names follow the persisted layout the UI
// shell has always used, so an existing profile survives an upgrade.
const (
	SlotCart     = "cart-storage"
	SlotWishlist = "wishlist-storage"
	SlotAuth     = "auth-storage"
	SlotToken    = "auth-token"
)

// Store is a durable, profile-scoped key-value store for state snapshots.
// It survives process restarts but is local to one client profile.
//
// Load is tolerant by contract: missing or corrupt payloads report
// (false, nil) so callers fall back to empty defaults instead of failing
// hydration. Errors are reserved for genuine I/O failures.
type Store interface {
	// Load reads the snapshot in the given slot into out.
	Load(ctx context.Context, slot string, out any) (bool, error)

	// Save persists v as the new snapshot for the slot, replacing any
	// previous value.
	Save(ctx context.Context, slot string, v any) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, slot string) error
}
