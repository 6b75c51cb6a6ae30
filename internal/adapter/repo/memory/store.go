// Package memory implements the persistence ports on plain maps. Every
// repo method takes the store lock on its own; RunInTx holds it across
// the whole function and marks the context so repo calls inside the
// transaction do not deadlock on re-entry.
package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type txKeyType struct{}

var txKey = txKeyType{}

type ownershipRow struct {
	ownerUserID int64 // 0 means unclaimed
	claimedAt   time.Time
}

type linkRow struct {
	equipped   bool
	acquiredAt time.Time
}

type Store struct {
	mu      sync.Mutex
	players map[int64]string
	owners  map[string]*ownershipRow
	links   map[int64]map[string]*linkRow
	intn    func(n int) int
}

func NewStore() *Store {
	return &Store{
		players: make(map[int64]string),
		owners:  make(map[string]*ownershipRow),
		links:   make(map[int64]map[string]*linkRow),
		intn:    rand.Intn,
	}
}

// lock acquires the store mutex unless ctx already runs inside RunInTx,
// which holds it for the duration of the transaction.
func (s *Store) lock(ctx context.Context) (unlock func()) {
	if ctx.Value(txKey) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// SeedOwner marks an item as already claimed, for test setup.
func (s *Store) SeedOwner(itemID string, userID int64, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[itemID] = &ownershipRow{ownerUserID: userID, claimedAt: at}
}

// Owner reports the current owner of an item (0 = unclaimed or unknown).
func (s *Store) Owner(itemID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.owners[itemID]; ok {
		return row.ownerUserID
	}
	return 0
}
