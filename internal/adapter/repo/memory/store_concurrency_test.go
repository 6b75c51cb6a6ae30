package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tavernbot/internal/app/ports"
)

// The live bot calls Ensure, PickRandomUnclaimed and ListByUser straight
// on the repos while claim transactions run through RunInTx, one
// goroutine per update. All of it must be safe to interleave.
func TestStore_ConcurrentDirectAndTransactionalAccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	players := NewPlayerRepo(store)
	items := NewWorldItemRepo(store)
	links := NewPlayerItemRepo(store)
	txm := NewTxManager(store)

	const workers = 50
	ids := make([]string, workers)
	for i := range ids {
		ids[i] = fmt.Sprintf("item-%02d", i)
	}
	if err := items.SeedCatalog(ctx, ids); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			if err := players.Ensure(ctx, int64(i+1), fmt.Sprintf("user_%d", i)); err != nil {
				t.Errorf("ensure %d: %v", i, err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			if _, err := items.PickRandomUnclaimed(ctx); err != nil && !errors.Is(err, ports.ErrNotFound) {
				t.Errorf("pick: %v", err)
			}
			if _, err := links.ListByUser(ctx, int64(i+1)); err != nil {
				t.Errorf("list: %v", err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			err := txm.RunInTx(ctx, func(txCtx context.Context) error {
				if err := players.Ensure(txCtx, int64(i+1), "claimant"); err != nil {
					return err
				}
				if err := items.Claim(txCtx, ids[i], int64(i+1), time.Now()); err != nil {
					return err
				}
				return links.Link(txCtx, int64(i+1), ids[i], time.Now())
			})
			if err != nil {
				t.Errorf("claim tx %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		if owner := store.Owner(id); owner != int64(i+1) {
			t.Fatalf("item %s: expected owner %d, got %d", id, i+1, owner)
		}
	}
}
