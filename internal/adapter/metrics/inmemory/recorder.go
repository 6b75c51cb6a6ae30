package inmemory

import (
	"sync"

	"tavernbot/internal/app/ports"
)

type Snapshot struct {
	EventsCreated   uint64 `json:"events_created"`
	RollsTotal      uint64 `json:"rolls_total"`
	RollsSucceeded  uint64 `json:"rolls_succeeded"`
	RollsFailed     uint64 `json:"rolls_failed"`
	ClaimsWon       uint64 `json:"claims_won"`
	ClaimsLost      uint64 `json:"claims_lost"`
	SessionsExpired uint64 `json:"sessions_expired"`
}

type Recorder struct {
	mu        sync.Mutex
	created   uint64
	rollWins  uint64
	rollMiss  uint64
	claimWon  uint64
	claimLost uint64
	expired   uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *Recorder) RecordRolled(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.rollWins++
	} else {
		r.rollMiss++
	}
}

func (r *Recorder) RecordClaimWon() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claimWon++
}

func (r *Recorder) RecordClaimLost() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claimLost++
}

func (r *Recorder) RecordExpired(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired += uint64(n)
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		EventsCreated:   r.created,
		RollsTotal:      r.rollWins + r.rollMiss,
		RollsSucceeded:  r.rollWins,
		RollsFailed:     r.rollMiss,
		ClaimsWon:       r.claimWon,
		ClaimsLost:      r.claimLost,
		SessionsExpired: r.expired,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

var _ ports.EventMetrics = (*Recorder)(nil)
