package memory

import (
	"context"
	"sort"
	"time"

	"tavernbot/internal/app/ports"
)

type WorldItemRepo struct {
	store *Store
}

func NewWorldItemRepo(store *Store) WorldItemRepo {
	return WorldItemRepo{store: store}
}

func (r WorldItemRepo) SeedCatalog(ctx context.Context, itemIDs []string) error {
	defer r.store.lock(ctx)()
	for _, id := range itemIDs {
		if _, ok := r.store.owners[id]; !ok {
			r.store.owners[id] = &ownershipRow{}
		}
	}
	return nil
}

func (r WorldItemRepo) PickRandomUnclaimed(ctx context.Context) (string, error) {
	defer r.store.lock(ctx)()
	ids := make([]string, 0, len(r.store.owners))
	for id, row := range r.store.owners {
		if row.ownerUserID == 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "", ports.ErrNotFound
	}
	sort.Strings(ids)
	return ids[r.store.intn(len(ids))], nil
}

func (r WorldItemRepo) Claim(ctx context.Context, itemID string, userID int64, at time.Time) error {
	defer r.store.lock(ctx)()
	row, ok := r.store.owners[itemID]
	if !ok {
		return ports.ErrNotFound
	}
	if row.ownerUserID != 0 {
		return ports.ErrAlreadyClaimed
	}
	row.ownerUserID = userID
	row.claimedAt = at
	return nil
}
