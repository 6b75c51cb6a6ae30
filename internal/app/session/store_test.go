package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"tavernbot/internal/domain/game"
)

func TestConsumeRoll_SingleWinner(t *testing.T) {
	s := NewStore()
	s.Put(game.Session{Token: "tok", AllowedID: 42})

	const presses = 16
	var wg sync.WaitGroup
	errs := make([]error, presses)
	for i := 0; i < presses; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.ConsumeRoll("tok", 42, "bob")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, ErrAlreadyRolled) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one accepted roll, got %d", wins)
	}
}

func TestConsumeRoll_Authorization(t *testing.T) {
	s := NewStore()
	s.Put(game.Session{Token: "tok", AllowedUsername: "bob"})

	if _, err := s.ConsumeRoll("tok", 1, "alice"); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
	if _, err := s.ConsumeRoll("missing", 1, "bob"); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
	if _, err := s.ConsumeRoll("tok", 1, "bob"); err != nil {
		t.Fatalf("authorized roll failed: %v", err)
	}
}

func TestFinishRoll_RemovesSessionWithoutDrop(t *testing.T) {
	s := NewStore()
	s.Put(game.Session{Token: "tok", AllowedID: 42})
	if _, err := s.ConsumeRoll("tok", 42, ""); err != nil {
		t.Fatalf("consume: %v", err)
	}

	s.FinishRoll("tok", 15, true, "", "text")
	if s.Len() != 0 {
		t.Fatal("resolved session without drop must be removed")
	}
}

func TestTakeDrop_FirstPressWins(t *testing.T) {
	s := NewStore()
	s.Put(game.Session{Token: "tok", AllowedID: 42})
	if _, err := s.ConsumeRoll("tok", 42, ""); err != nil {
		t.Fatalf("consume: %v", err)
	}
	s.FinishRoll("tok", 15, true, "ring", "text")

	const presses = 16
	var wg sync.WaitGroup
	errs := make([]error, presses)
	for i := 0; i < presses; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.TakeDrop("tok", 42)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else if !errors.Is(err, ErrUnknownToken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one drop take-over, got %d", wins)
	}
	if s.Len() != 0 {
		t.Fatal("claimed session must be removed")
	}
}

func TestTakeDrop_RollerOnly(t *testing.T) {
	s := NewStore()
	s.Put(game.Session{Token: "tok", AllowedID: 42})
	if _, err := s.ConsumeRoll("tok", 42, ""); err != nil {
		t.Fatalf("consume: %v", err)
	}
	s.FinishRoll("tok", 15, true, "ring", "text")

	if _, err := s.TakeDrop("tok", 7); !errors.Is(err, ErrNotRoller) {
		t.Fatalf("expected ErrNotRoller, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatal("rejected claim must not remove the session")
	}
}

func TestTakeDrop_NothingToClaim(t *testing.T) {
	s := NewStore()
	s.Put(game.Session{Token: "tok", AllowedID: 42, Used: true, RollerID: 42})

	if _, err := s.TakeDrop("tok", 42); !errors.Is(err, ErrNothingToClaim) {
		t.Fatalf("expected ErrNothingToClaim, got %v", err)
	}
}

func TestSweep_ReapsOldSessions(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put(game.Session{Token: "old", CreatedAt: now.Add(-3 * time.Hour)})
	s.Put(game.Session{Token: "fresh", CreatedAt: now.Add(-time.Minute)})

	if n := s.Sweep(2 * time.Hour); n != 1 {
		t.Fatalf("expected 1 reaped, got %d", n)
	}
	if _, ok := s.Get("old"); ok {
		t.Fatal("old session must be gone")
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Fatal("fresh session must survive")
	}
}
