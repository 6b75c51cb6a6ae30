package inventory

import (
	"context"
	"errors"
	"time"

	"tavernbot/internal/app/ports"
	"tavernbot/internal/domain/game"
	"tavernbot/internal/render"
)

var ErrInvalidRequest = errors.New("invalid inventory request")

const (
	noticeNotYourBag = "That's someone else's bag."
	noticeNotOwned   = "You don't own this item."
	noticeSlotsFull  = "Equip slots are full. Unequip something first."
	noticeEquipped   = "Equipped."
	noticeUnequipped = "Unequipped."
)

type ViewRequest struct {
	ChatID    int64
	MessageID int
	UserID    int64
	Username  string
}

type ToggleRequest struct {
	ChatID     int64
	MessageID  int
	CallbackID string
	UserID     int64
	Username   string
	OwnerID    int64
	ItemID     string
	Equip      bool
}

// UseCase serves the inventory view and the equip/unequip toggles.
// The equipped-count guard runs inside one transaction so concurrent
// toggles cannot push a player past MaxEquipped.
type UseCase struct {
	TxManager   ports.TxManager
	Players     ports.PlayerRepository
	PlayerItems ports.PlayerItemRepository
	Catalog     game.Catalog
	Chat        ports.ChatClient
	MaxEquipped int
	Now         func() time.Time
}

func (u UseCase) View(ctx context.Context, req ViewRequest) error {
	if u.Chat == nil || u.PlayerItems == nil {
		return ErrInvalidRequest
	}
	if u.Players != nil {
		if err := u.Players.Ensure(ctx, req.UserID, req.Username); err != nil {
			return err
		}
	}

	items, err := u.PlayerItems.ListByUser(ctx, req.UserID)
	if err != nil {
		return err
	}

	text, keyboard := render.Inventory(req.UserID, req.Username, items, u.Catalog, u.MaxEquipped)
	_, err = u.Chat.Send(ctx, ports.OutgoingMessage{
		ChatID:   req.ChatID,
		ReplyTo:  req.MessageID,
		Text:     text,
		Keyboard: keyboard,
	})
	return err
}

func (u UseCase) ToggleEquip(ctx context.Context, req ToggleRequest) error {
	if u.Chat == nil || u.PlayerItems == nil || u.TxManager == nil {
		return ErrInvalidRequest
	}

	// Buttons ride on a shared group message; only the bag owner acts.
	if req.UserID != req.OwnerID {
		return u.Chat.AnswerCallback(ctx, req.CallbackID, noticeNotYourBag)
	}

	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if req.Equip {
			n, err := u.PlayerItems.CountEquipped(txCtx, req.UserID)
			if err != nil {
				return err
			}
			if n >= u.MaxEquipped {
				return ports.ErrSlotsFull
			}
		}
		return u.PlayerItems.SetEquipped(txCtx, req.UserID, req.ItemID, req.Equip)
	})

	switch {
	case errors.Is(err, ports.ErrSlotsFull):
		return u.Chat.AnswerCallback(ctx, req.CallbackID, noticeSlotsFull)
	case errors.Is(err, ports.ErrNotOwned):
		return u.Chat.AnswerCallback(ctx, req.CallbackID, noticeNotOwned)
	case err != nil:
		return err
	}

	notice := noticeUnequipped
	if req.Equip {
		notice = noticeEquipped
	}
	if err := u.Chat.AnswerCallback(ctx, req.CallbackID, notice); err != nil {
		return err
	}

	items, err := u.PlayerItems.ListByUser(ctx, req.UserID)
	if err != nil {
		return err
	}
	text, keyboard := render.Inventory(req.UserID, req.Username, items, u.Catalog, u.MaxEquipped)
	return u.Chat.Edit(ctx, ports.MessageEdit{
		ChatID:    req.ChatID,
		MessageID: req.MessageID,
		Text:      text,
		Keyboard:  keyboard,
	})
}
