package telegram

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type statsProvider interface {
	SnapshotAny() any
}

type sessionCounter interface {
	Len() int
}

// OpsHandler serves the operational surface: liveness, counters, and
// optionally the webhook intake when the bot runs in webhook mode
// instead of long polling.
type OpsHandler struct {
	Updates  chan<- tgbotapi.Update // nil disables the webhook route
	Stats    statsProvider
	Sessions sessionCounter
}

func (h OpsHandler) RegisterRoutes(s *server.Hertz) {
	s.GET("/healthz", h.healthz)
	s.GET("/ops/stats", h.stats)
	if h.Updates != nil {
		s.POST("/webhook", h.webhook)
	}
}

func (h OpsHandler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func (h OpsHandler) stats(_ context.Context, ctx *app.RequestContext) {
	out := map[string]any{}
	if h.Stats != nil {
		out["events"] = h.Stats.SnapshotAny()
	}
	if h.Sessions != nil {
		out["active_sessions"] = h.Sessions.Len()
	}
	ctx.JSON(consts.StatusOK, out)
}

func (h OpsHandler) webhook(_ context.Context, ctx *app.RequestContext) {
	var upd tgbotapi.Update
	if err := json.Unmarshal(ctx.Request.Body(), &upd); err != nil {
		ctx.JSON(consts.StatusBadRequest, map[string]string{"error": "invalid update payload"})
		return
	}

	select {
	case h.Updates <- upd:
		ctx.SetStatusCode(consts.StatusOK)
	default:
		// Intake is full; Telegram retries undelivered updates.
		ctx.SetStatusCode(consts.StatusServiceUnavailable)
	}
}
