package memory

import "context"

type PlayerRepo struct {
	store *Store
}

func NewPlayerRepo(store *Store) PlayerRepo {
	return PlayerRepo{store: store}
}

func (r PlayerRepo) Ensure(ctx context.Context, userID int64, username string) error {
	defer r.store.lock(ctx)()
	r.store.players[userID] = username
	return nil
}
