package telegram

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tavernbot/internal/app/event"
	"tavernbot/internal/app/inventory"
	"tavernbot/internal/domain/game"
)

const handleTimeout = 30 * time.Second

// Listener routes incoming updates to the use cases. Each update is
// handled on its own goroutine so a slow narration call does not stall
// button presses from other chats.
type Listener struct {
	CreateUC    event.CreateUseCase
	RollUC      event.RollUseCase
	ClaimUC     event.ClaimUseCase
	InventoryUC inventory.UseCase
}

func (l Listener) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			go func(upd tgbotapi.Update) {
				hctx, cancel := context.WithTimeout(ctx, handleTimeout)
				defer cancel()
				l.HandleUpdate(hctx, upd)
			}(upd)
		}
	}
}

func (l Listener) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		l.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		l.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (l Listener) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	switch {
	case game.IsTrigger(msg.Text):
		target, description := game.ParseTrigger(msg.Text)
		err := l.CreateUC.Execute(ctx, event.CreateRequest{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.MessageID,
			UserID:      msg.From.ID,
			Username:    msg.From.UserName,
			Target:      target,
			Description: description,
		})
		if err != nil {
			log.Printf("create event (chat %d): %v", msg.Chat.ID, err)
		}
	case game.IsInventory(msg.Text):
		err := l.InventoryUC.View(ctx, inventory.ViewRequest{
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
			UserID:    msg.From.ID,
			Username:  msg.From.UserName,
		})
		if err != nil {
			log.Printf("inventory view (chat %d): %v", msg.Chat.ID, err)
		}
	}
}

func (l Listener) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	cb, ok := game.ParseCallback(cq.Data)
	if !ok || cq.Message == nil {
		return
	}

	switch cb.Kind {
	case game.CallbackRoll:
		err := l.RollUC.Execute(ctx, event.ButtonRequest{
			Token:      cb.Token,
			CallbackID: cq.ID,
			UserID:     cq.From.ID,
			Username:   cq.From.UserName,
		})
		if err != nil {
			log.Printf("roll %s: %v", cb.Token, err)
		}
	case game.CallbackClaim:
		err := l.ClaimUC.Execute(ctx, event.ButtonRequest{
			Token:      cb.Token,
			CallbackID: cq.ID,
			UserID:     cq.From.ID,
			Username:   cq.From.UserName,
		})
		if err != nil {
			log.Printf("claim %s: %v", cb.Token, err)
		}
	case game.CallbackEquip:
		err := l.InventoryUC.ToggleEquip(ctx, inventory.ToggleRequest{
			ChatID:     cq.Message.Chat.ID,
			MessageID:  cq.Message.MessageID,
			CallbackID: cq.ID,
			UserID:     cq.From.ID,
			Username:   cq.From.UserName,
			OwnerID:    cb.OwnerID,
			ItemID:     cb.ItemID,
			Equip:      cb.Equip,
		})
		if err != nil {
			log.Printf("equip toggle %s: %v", cb.ItemID, err)
		}
	}
}
