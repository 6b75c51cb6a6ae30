package ports

import (
	"context"
	"time"
)

type PlayerRepository interface {
	// Ensure is an idempotent upsert: inserts the player on first
	// interaction, refreshes the stored username on every later one.
	Ensure(ctx context.Context, userID int64, username string) error
}

type WorldItemRepository interface {
	// SeedCatalog inserts an unclaimed ownership row for every catalog
	// item id that does not have one yet.
	SeedCatalog(ctx context.Context, itemIDs []string) error

	// PickRandomUnclaimed returns a uniformly chosen unclaimed item id,
	// or ErrNotFound when the catalog is fully claimed.
	PickRandomUnclaimed(ctx context.Context) (string, error)

	// Claim transitions ownership null→user via a storage-level
	// conditional update. Returns ErrNotFound for unknown items and
	// ErrAlreadyClaimed when the conditional update affects no row.
	Claim(ctx context.Context, itemID string, userID int64, at time.Time) error
}

type PlayerItemRecord struct {
	ItemID     string
	Equipped   bool
	AcquiredAt time.Time
}

type PlayerItemRepository interface {
	// Link records ownership of an item for a player (equipped=false).
	// Idempotent: linking an already-linked pair is a no-op.
	Link(ctx context.Context, userID int64, itemID string, at time.Time) error

	// ListByUser returns the player's items, most recently acquired first.
	ListByUser(ctx context.Context, userID int64) ([]PlayerItemRecord, error)

	CountEquipped(ctx context.Context, userID int64) (int, error)

	// SetEquipped toggles the equip flag. Returns ErrNotOwned when no
	// link row exists. Unequip of an unequipped item succeeds.
	SetEquipped(ctx context.Context, userID int64, itemID string, equipped bool) error
}
