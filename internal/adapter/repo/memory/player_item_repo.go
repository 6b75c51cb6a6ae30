package memory

import (
	"context"
	"sort"
	"time"

	"tavernbot/internal/app/ports"
)

type PlayerItemRepo struct {
	store *Store
}

func NewPlayerItemRepo(store *Store) PlayerItemRepo {
	return PlayerItemRepo{store: store}
}

func (r PlayerItemRepo) Link(ctx context.Context, userID int64, itemID string, at time.Time) error {
	defer r.store.lock(ctx)()
	links := r.store.links[userID]
	if links == nil {
		links = make(map[string]*linkRow)
		r.store.links[userID] = links
	}
	if _, ok := links[itemID]; !ok {
		links[itemID] = &linkRow{acquiredAt: at}
	}
	return nil
}

func (r PlayerItemRepo) ListByUser(ctx context.Context, userID int64) ([]ports.PlayerItemRecord, error) {
	defer r.store.lock(ctx)()
	links := r.store.links[userID]
	out := make([]ports.PlayerItemRecord, 0, len(links))
	for id, row := range links {
		out = append(out, ports.PlayerItemRecord{
			ItemID:     id,
			Equipped:   row.equipped,
			AcquiredAt: row.acquiredAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AcquiredAt.Equal(out[j].AcquiredAt) {
			return out[i].AcquiredAt.After(out[j].AcquiredAt)
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

func (r PlayerItemRepo) CountEquipped(ctx context.Context, userID int64) (int, error) {
	defer r.store.lock(ctx)()
	n := 0
	for _, row := range r.store.links[userID] {
		if row.equipped {
			n++
		}
	}
	return n, nil
}

func (r PlayerItemRepo) SetEquipped(ctx context.Context, userID int64, itemID string, equipped bool) error {
	defer r.store.lock(ctx)()
	row, ok := r.store.links[userID][itemID]
	if !ok {
		return ports.ErrNotOwned
	}
	row.equipped = equipped
	return nil
}
