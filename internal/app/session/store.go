// Package session holds the in-memory challenge state machine: one
// record per in-flight narrated event, keyed by an opaque token.
package session

import (
	"errors"
	"sync"
	"time"

	"tavernbot/internal/domain/game"
)

var (
	ErrUnknownToken   = errors.New("unknown or expired token")
	ErrNotAllowed     = errors.New("press not authorized")
	ErrAlreadyRolled  = errors.New("roll already consumed")
	ErrNotRoller      = errors.New("only the roller may claim")
	ErrNothingToClaim = errors.New("nothing to claim")
)

// Store guards all session state behind one mutex. Handlers run
// concurrently, so every read-check-then-write sequence (roll
// consumption, drop take-over) happens inside a single critical
// section; two simultaneous presses can never both win.
type Store struct {
	mu       sync.Mutex
	sessions map[game.Token]*game.Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[game.Token]*game.Session),
		now:      time.Now,
	}
}

func (s *Store) Put(sess game.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}
	s.sessions[sess.Token] = &sess
}

func (s *Store) Get(token game.Token) (game.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return game.Session{}, false
	}
	return *sess, true
}

// ConsumeRoll atomically authorizes and consumes the single roll of a
// session. At most one caller ever gets a nil error for a given token.
func (s *Store) ConsumeRoll(token game.Token, userID int64, username string) (game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return game.Session{}, ErrUnknownToken
	}
	if !sess.CanRoll(userID, username) {
		return game.Session{}, ErrNotAllowed
	}
	if sess.Used {
		return game.Session{}, ErrAlreadyRolled
	}
	sess.Used = true
	sess.RollerID = userID
	return *sess, nil
}

// FinishRoll stores the resolved outcome. A session without a pending
// drop is fully resolved and removed; one with a drop stays until the
// claim button is pressed or the sweeper reaps it.
func (s *Store) FinishRoll(token game.Token, roll int, success bool, dropItemID, renderedText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return
	}
	sess.Roll = roll
	sess.Success = success
	sess.DropItemID = dropItemID
	sess.RenderedText = renderedText
	if dropItemID == "" {
		delete(s.sessions, token)
	}
}

// TakeDrop atomically removes the session and hands its pending drop to
// the caller. The first press wins; any later press sees ErrUnknownToken.
// Persistence remains the final arbiter of item ownership across
// sessions offering the same item.
func (s *Store) TakeDrop(token game.Token, userID int64) (game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return game.Session{}, ErrUnknownToken
	}
	if !sess.CanClaim(userID) {
		return game.Session{}, ErrNotRoller
	}
	if sess.DropItemID == "" {
		return game.Session{}, ErrNothingToClaim
	}
	delete(s.sessions, token)
	return *sess, nil
}

// Sweep deletes sessions older than ttl and reports how many fell.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	n := 0
	for token, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, token)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
