package inventory

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"tavernbot/internal/adapter/repo/memory"
	"tavernbot/internal/app/ports"
	"tavernbot/internal/domain/game"
)

type fakeChat struct {
	mu      sync.Mutex
	sends   []ports.OutgoingMessage
	edits   []ports.MessageEdit
	notices []string
}

func (c *fakeChat) Send(_ context.Context, m ports.OutgoingMessage) (ports.SentMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends = append(c.sends, m)
	return ports.SentMessage{ChatID: m.ChatID, MessageID: len(c.sends)}, nil
}

func (c *fakeChat) Edit(_ context.Context, e ports.MessageEdit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edits = append(c.edits, e)
	return nil
}

func (c *fakeChat) AnswerCallback(_ context.Context, _ string, notice string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, notice)
	return nil
}

func (c *fakeChat) noticeCount(substr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, notice := range c.notices {
		if strings.Contains(notice, substr) {
			n++
		}
	}
	return n
}

var _ ports.ChatClient = (*fakeChat)(nil)

func testCatalog(t *testing.T) game.Catalog {
	t.Helper()
	c, err := game.NewCatalog([]game.Item{
		{ID: "ring", Name: "Ring of Vigor", Stats: []game.StatModifier{{Name: "strength", Delta: 2}}},
		{ID: "boots", Name: "Boots of Sneaking"},
		{ID: "cloak", Name: "Cloak of Shade"},
		{ID: "lute", Name: "Cursed Lute"},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func newFixture(t *testing.T) (UseCase, *fakeChat, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	chat := &fakeChat{}
	uc := UseCase{
		TxManager:   memory.NewTxManager(mem),
		Players:     memory.NewPlayerRepo(mem),
		PlayerItems: memory.NewPlayerItemRepo(mem),
		Catalog:     testCatalog(t),
		Chat:        chat,
		MaxEquipped: 3,
	}
	return uc, chat, mem
}

func giveItems(t *testing.T, uc UseCase, userID int64, itemIDs ...string) {
	t.Helper()
	at := time.Now()
	for i, id := range itemIDs {
		// Staggered timestamps keep the newest-first ordering stable.
		if err := uc.PlayerItems.Link(context.Background(), userID, id, at.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("link %s: %v", id, err)
		}
	}
}

func TestView_EmptyBag(t *testing.T) {
	uc, chat, _ := newFixture(t)

	if err := uc.View(context.Background(), ViewRequest{ChatID: 1, UserID: 42, Username: "bob"}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if len(chat.sends) != 1 {
		t.Fatalf("expected one message, got %d", len(chat.sends))
	}
	if len(chat.sends[0].Keyboard) != 0 {
		t.Fatalf("empty bag must have no toggle buttons: %+v", chat.sends[0].Keyboard)
	}
}

func TestView_ListsItemsWithToggleButtons(t *testing.T) {
	uc, chat, _ := newFixture(t)
	giveItems(t, uc, 42, "ring", "boots")

	if err := uc.View(context.Background(), ViewRequest{ChatID: 1, UserID: 42, Username: "bob"}); err != nil {
		t.Fatalf("view: %v", err)
	}

	sent := chat.sends[0]
	for _, want := range []string{"Ring of Vigor", "Boots of Sneaking", "0/3"} {
		if !strings.Contains(sent.Text, want) {
			t.Fatalf("view missing %q:\n%s", want, sent.Text)
		}
	}
	if len(sent.Keyboard) != 2 {
		t.Fatalf("expected one button row per item, got %d", len(sent.Keyboard))
	}
	// Every button encodes the owner so a stranger's press is refused.
	for _, row := range sent.Keyboard {
		cb, ok := game.ParseCallback(row[0].Data)
		if !ok || cb.Kind != game.CallbackEquip || cb.OwnerID != 42 {
			t.Fatalf("bad toggle callback %q", row[0].Data)
		}
	}
}

func TestToggleEquip_RoundTrip(t *testing.T) {
	uc, chat, _ := newFixture(t)
	giveItems(t, uc, 42, "ring")

	req := ToggleRequest{ChatID: 1, MessageID: 5, UserID: 42, Username: "bob", OwnerID: 42, ItemID: "ring", Equip: true}
	if err := uc.ToggleEquip(context.Background(), req); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if chat.noticeCount(noticeEquipped) != 1 {
		t.Fatalf("expected equipped notice, got %v", chat.notices)
	}
	if len(chat.edits) != 1 || !strings.Contains(chat.edits[0].Text, "1/3") {
		t.Fatalf("edit must show the new equipped count: %+v", chat.edits)
	}

	req.Equip = false
	if err := uc.ToggleEquip(context.Background(), req); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if chat.noticeCount(noticeUnequipped) != 1 {
		t.Fatalf("expected unequipped notice, got %v", chat.notices)
	}
	if !strings.Contains(chat.edits[1].Text, "0/3") {
		t.Fatalf("edit must show the count back at zero:\n%s", chat.edits[1].Text)
	}
}

func TestToggleEquip_UnequipIsIdempotent(t *testing.T) {
	uc, chat, _ := newFixture(t)
	giveItems(t, uc, 42, "ring")

	req := ToggleRequest{ChatID: 1, MessageID: 5, UserID: 42, OwnerID: 42, ItemID: "ring", Equip: false}
	for i := 0; i < 2; i++ {
		if err := uc.ToggleEquip(context.Background(), req); err != nil {
			t.Fatalf("unequip #%d: %v", i+1, err)
		}
	}
	if chat.noticeCount(noticeUnequipped) != 2 {
		t.Fatalf("repeated unequip must keep succeeding, got %v", chat.notices)
	}
}

func TestToggleEquip_SlotsFullLeavesStateUnchanged(t *testing.T) {
	uc, chat, _ := newFixture(t)
	giveItems(t, uc, 42, "ring", "boots", "cloak", "lute")

	for _, id := range []string{"ring", "boots", "cloak"} {
		req := ToggleRequest{ChatID: 1, MessageID: 5, UserID: 42, OwnerID: 42, ItemID: id, Equip: true}
		if err := uc.ToggleEquip(context.Background(), req); err != nil {
			t.Fatalf("equip %s: %v", id, err)
		}
	}

	req := ToggleRequest{ChatID: 1, MessageID: 5, UserID: 42, OwnerID: 42, ItemID: "lute", Equip: true}
	if err := uc.ToggleEquip(context.Background(), req); err != nil {
		t.Fatalf("fourth equip: %v", err)
	}
	if chat.noticeCount(noticeSlotsFull) != 1 {
		t.Fatalf("expected slots-full notice, got %v", chat.notices)
	}

	n, err := uc.PlayerItems.CountEquipped(context.Background(), 42)
	if err != nil || n != 3 {
		t.Fatalf("equipped count must stay at 3, got %d err=%v", n, err)
	}
	records, err := uc.PlayerItems.ListByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, rec := range records {
		if rec.ItemID == "lute" && rec.Equipped {
			t.Fatal("refused equip must not flip the item")
		}
	}
}

func TestToggleEquip_NotOwned(t *testing.T) {
	uc, chat, _ := newFixture(t)

	req := ToggleRequest{ChatID: 1, MessageID: 5, UserID: 42, OwnerID: 42, ItemID: "ring", Equip: true}
	if err := uc.ToggleEquip(context.Background(), req); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if chat.noticeCount(noticeNotOwned) != 1 {
		t.Fatalf("expected not-owned notice, got %v", chat.notices)
	}
	if len(chat.edits) != 0 {
		t.Fatal("refused toggle must not edit the message")
	}
}

func TestToggleEquip_StrangerPressRefused(t *testing.T) {
	uc, chat, _ := newFixture(t)
	giveItems(t, uc, 42, "ring")

	req := ToggleRequest{ChatID: 1, MessageID: 5, UserID: 7, Username: "eve", OwnerID: 42, ItemID: "ring", Equip: true}
	if err := uc.ToggleEquip(context.Background(), req); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if chat.noticeCount(noticeNotYourBag) != 1 {
		t.Fatalf("expected wrong-bag notice, got %v", chat.notices)
	}

	n, err := uc.PlayerItems.CountEquipped(context.Background(), 42)
	if err != nil || n != 0 {
		t.Fatalf("stranger press must not touch the bag, got %d err=%v", n, err)
	}
}
