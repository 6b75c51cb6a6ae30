package event

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"tavernbot/internal/app/ports"
	"tavernbot/internal/app/session"
	"tavernbot/internal/domain/game"
	"tavernbot/internal/render"
)

var ErrInvalidRequest = errors.New("invalid event request")

const usageHint = "Describe the event after /dnd.\nExample: /dnd @alex stole a pie from the vendor"

const (
	noticeExpired   = "This event has expired."
	noticeNotYours  = "This is not your roll."
	noticeUsed      = "The die has already been cast."
	noticeNotRoller = "Only the roller may claim the loot."
	noticeNoLoot    = "Nothing left to claim."
	noticeClaimLost = "Someone got there first."
	noticeClaimWon  = "It's yours!"
	noticeRolledFmt = "You rolled %d."
)

// CreateUseCase starts a challenge from a trigger message: picks a
// persona, requests intro narration, stores the session and sends the
// event message with its roll button.
type CreateUseCase struct {
	Sessions   *session.Store
	Players    ports.PlayerRepository
	Narrator   ports.Narrator
	Fallback   ports.Narrator
	Chat       ports.ChatClient
	Metrics    ports.EventMetrics
	Personas   []game.Persona
	CheckTypes []string
	NewToken   func() game.Token
	Now        func() time.Time
}

func (u CreateUseCase) Execute(ctx context.Context, req CreateRequest) error {
	if u.Sessions == nil || u.Chat == nil || u.Narrator == nil {
		return ErrInvalidRequest
	}

	if strings.TrimSpace(req.Description) == "" {
		_, err := u.Chat.Send(ctx, ports.OutgoingMessage{
			ChatID:  req.ChatID,
			ReplyTo: req.MessageID,
			Text:    usageHint,
		})
		return err
	}

	if u.Players != nil {
		if err := u.Players.Ensure(ctx, req.UserID, req.Username); err != nil {
			return err
		}
	}

	persona := game.PickPersona(u.Personas)
	intro, err := u.narrateIntro(ctx, ports.IntroRequest{
		Target:        req.Target,
		Description:   req.Description,
		PersonaPrompt: persona.Prompt,
	})
	if err != nil {
		return err
	}

	newToken := u.NewToken
	if newToken == nil {
		newToken = func() game.Token { return game.Token(uuid.NewString()) }
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	sess := game.Session{
		Token:       newToken(),
		ChatID:      req.ChatID,
		ReplyTo:     req.MessageID,
		DC:          game.D20(),
		CheckType:   game.PickCheckType(u.CheckTypes),
		Target:      req.Target,
		Description: req.Description,
		Intro:       intro,
		Persona:     persona,
		CreatedAt:   nowFn(),
	}
	if req.Target != "" {
		sess.AllowedUsername = strings.TrimPrefix(req.Target, "@")
	} else {
		sess.AllowedID = req.UserID
	}

	sent, err := u.Chat.Send(ctx, ports.OutgoingMessage{
		ChatID:   req.ChatID,
		ReplyTo:  req.MessageID,
		Text:     render.StylizeActions(render.EventHeader(sess)),
		Keyboard: render.RollKeyboard(sess.Token),
		Markdown: true,
	})
	if err != nil {
		return err
	}

	// Stored only after the send, so the session always carries the
	// message it must later edit. A button press racing the send sees
	// no session yet and gets the expired notice; pressing again works.
	sess.ChatID = sent.ChatID
	sess.MessageID = sent.MessageID
	u.Sessions.Put(sess)

	if u.Metrics != nil {
		u.Metrics.RecordCreated()
	}
	return nil
}

func (u CreateUseCase) narrateIntro(ctx context.Context, req ports.IntroRequest) (string, error) {
	intro, err := u.Narrator.Intro(ctx, req)
	if err != nil && u.Fallback != nil {
		return u.Fallback.Intro(ctx, req)
	}
	return intro, err
}

// RollUseCase resolves the single d20 roll of a session: consumes the
// roll atomically, draws loot, requests outcome narration and edits the
// event message in place.
type RollUseCase struct {
	Sessions   *session.Store
	Items      ports.WorldItemRepository
	Catalog    game.Catalog
	Narrator   ports.Narrator
	Fallback   ports.Narrator
	Chat       ports.ChatClient
	Metrics    ports.EventMetrics
	LootChance float64
	RollDie    func() int
	Chance     func() float64
}

func (u RollUseCase) Execute(ctx context.Context, req ButtonRequest) error {
	if u.Sessions == nil || u.Chat == nil || u.Narrator == nil {
		return ErrInvalidRequest
	}

	sess, err := u.Sessions.ConsumeRoll(req.Token, req.UserID, req.Username)
	if err != nil {
		return u.Chat.AnswerCallback(ctx, req.CallbackID, rollNotice(err))
	}

	rollDie := u.RollDie
	if rollDie == nil {
		rollDie = game.D20
	}
	sess.Roll = rollDie()
	sess.Success = game.CheckSuccess(sess.Roll, sess.DC)

	if err := u.Chat.AnswerCallback(ctx, req.CallbackID, fmt.Sprintf(noticeRolledFmt, sess.Roll)); err != nil {
		return err
	}

	sess.DropItemID = u.drawLoot(ctx)
	var loot *game.Item
	var lootHint string
	if sess.DropItemID != "" {
		if item, ok := u.Catalog.Get(sess.DropItemID); ok {
			loot = &item
			lootHint = item.Name
		} else {
			// Id came from the ownership table but the catalog file no
			// longer carries it; don't offer ghosts.
			sess.DropItemID = ""
		}
	}

	outcome, err := u.narrateOutcome(ctx, ports.OutcomeRequest{
		Success:       sess.Success,
		CheckType:     sess.CheckType,
		DC:            sess.DC,
		Roll:          sess.Roll,
		Target:        sess.Target,
		Description:   sess.Description,
		PersonaPrompt: sess.Persona.Prompt,
		LootHint:      lootHint,
	})
	if err != nil {
		return err
	}

	rendered := render.EventResolved(sess, outcome, loot)
	u.Sessions.FinishRoll(req.Token, sess.Roll, sess.Success, sess.DropItemID, rendered)

	keyboard := ports.Keyboard{}
	if sess.DropItemID != "" {
		keyboard = render.ClaimKeyboard(req.Token)
	}
	if err := u.Chat.Edit(ctx, ports.MessageEdit{
		ChatID:    sess.ChatID,
		MessageID: sess.MessageID,
		Text:      render.StylizeActions(rendered),
		Keyboard:  keyboard,
		Markdown:  true,
	}); err != nil {
		return err
	}

	if u.Metrics != nil {
		u.Metrics.RecordRolled(sess.Success)
	}
	return nil
}

// drawLoot applies the loot probability and picks an unclaimed item.
// A fully claimed catalog, or a storage fault, just costs the drop;
// the roll itself still resolves.
func (u RollUseCase) drawLoot(ctx context.Context) string {
	if u.Items == nil {
		return ""
	}
	chance := u.Chance
	if chance == nil {
		chance = rand.Float64
	}
	if chance() >= u.LootChance {
		return ""
	}
	id, err := u.Items.PickRandomUnclaimed(ctx)
	if err != nil {
		return ""
	}
	return id
}

func (u RollUseCase) narrateOutcome(ctx context.Context, req ports.OutcomeRequest) (string, error) {
	outcome, err := u.Narrator.Outcome(ctx, req)
	if err != nil && u.Fallback != nil {
		return u.Fallback.Outcome(ctx, req)
	}
	return outcome, err
}

func rollNotice(err error) string {
	switch {
	case errors.Is(err, session.ErrNotAllowed):
		return noticeNotYours
	case errors.Is(err, session.ErrAlreadyRolled):
		return noticeUsed
	default:
		return noticeExpired
	}
}

// ClaimUseCase transfers a pending drop to the roller. The session
// store resolves double presses on one button; the storage-level
// conditional update is the arbiter across sessions offering the same
// item. The session is removed whether the claim wins or loses.
type ClaimUseCase struct {
	Sessions    *session.Store
	TxManager   ports.TxManager
	Players     ports.PlayerRepository
	Items       ports.WorldItemRepository
	PlayerItems ports.PlayerItemRepository
	Catalog     game.Catalog
	Chat        ports.ChatClient
	Metrics     ports.EventMetrics
	Now         func() time.Time
}

func (u ClaimUseCase) Execute(ctx context.Context, req ButtonRequest) error {
	if u.Sessions == nil || u.Chat == nil || u.TxManager == nil || u.Items == nil || u.PlayerItems == nil {
		return ErrInvalidRequest
	}

	sess, err := u.Sessions.TakeDrop(req.Token, req.UserID)
	if err != nil {
		return u.Chat.AnswerCallback(ctx, req.CallbackID, claimNotice(err))
	}

	item, ok := u.Catalog.Get(sess.DropItemID)
	if !ok {
		item = game.Item{ID: sess.DropItemID, Name: sess.DropItemID}
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	at := nowFn()

	err = u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if u.Players != nil {
			if err := u.Players.Ensure(txCtx, req.UserID, req.Username); err != nil {
				return err
			}
		}
		if err := u.Items.Claim(txCtx, sess.DropItemID, req.UserID, at); err != nil {
			return err
		}
		return u.PlayerItems.Link(txCtx, req.UserID, sess.DropItemID, at)
	})

	var rendered, notice string
	switch {
	case err == nil:
		rendered = render.ClaimWon(sess.RenderedText, item, req.Username)
		notice = noticeClaimWon
		if u.Metrics != nil {
			u.Metrics.RecordClaimWon()
		}
	case errors.Is(err, ports.ErrAlreadyClaimed), errors.Is(err, ports.ErrNotFound):
		rendered = render.ClaimLost(sess.RenderedText, item)
		notice = noticeClaimLost
		if u.Metrics != nil {
			u.Metrics.RecordClaimLost()
		}
	default:
		return err
	}

	if err := u.Chat.AnswerCallback(ctx, req.CallbackID, notice); err != nil {
		return err
	}
	return u.Chat.Edit(ctx, ports.MessageEdit{
		ChatID:    sess.ChatID,
		MessageID: sess.MessageID,
		Text:      render.StylizeActions(rendered),
		Keyboard:  ports.Keyboard{},
		Markdown:  true,
	})
}

func claimNotice(err error) string {
	switch {
	case errors.Is(err, session.ErrNotRoller):
		return noticeNotRoller
	case errors.Is(err, session.ErrNothingToClaim):
		return noticeNoLoot
	default:
		return noticeExpired
	}
}
