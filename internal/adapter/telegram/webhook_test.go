package telegram

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeStats struct{}

func (fakeStats) SnapshotAny() any { return map[string]uint64{"events_created": 2} }

type fakeSessions struct{ n int }

func (f fakeSessions) Len() int { return f.n }

func TestHealthz(t *testing.T) {
	rc := &app.RequestContext{}
	OpsHandler{}.healthz(context.Background(), rc)
	if rc.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("expected 200, got %d", rc.Response.StatusCode())
	}
}

func TestStats(t *testing.T) {
	rc := &app.RequestContext{}
	OpsHandler{Stats: fakeStats{}, Sessions: fakeSessions{n: 3}}.stats(context.Background(), rc)
	if rc.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("expected 200, got %d", rc.Response.StatusCode())
	}

	var body map[string]any
	if err := json.Unmarshal(rc.Response.Body(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["active_sessions"].(float64) != 3 {
		t.Fatalf("unexpected stats body: %v", body)
	}
}

func TestWebhook_DeliversUpdate(t *testing.T) {
	updates := make(chan tgbotapi.Update, 1)
	h := OpsHandler{Updates: updates}

	rc := &app.RequestContext{}
	rc.Request.SetBody([]byte(`{"update_id": 7, "message": {"message_id": 1, "text": "/dnd kicked the door"}}`))
	h.webhook(context.Background(), rc)

	if rc.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("expected 200, got %d", rc.Response.StatusCode())
	}
	select {
	case upd := <-updates:
		if upd.UpdateID != 7 || upd.Message == nil || upd.Message.Text != "/dnd kicked the door" {
			t.Fatalf("unexpected update: %+v", upd)
		}
	default:
		t.Fatal("update not delivered to the channel")
	}
}

func TestWebhook_RejectsGarbageAndFullIntake(t *testing.T) {
	updates := make(chan tgbotapi.Update) // unbuffered: always full
	h := OpsHandler{Updates: updates}

	rc := &app.RequestContext{}
	rc.Request.SetBody([]byte(`{not json`))
	h.webhook(context.Background(), rc)
	if rc.Response.StatusCode() != consts.StatusBadRequest {
		t.Fatalf("expected 400 for garbage, got %d", rc.Response.StatusCode())
	}

	rc = &app.RequestContext{}
	rc.Request.SetBody([]byte(`{"update_id": 8}`))
	h.webhook(context.Background(), rc)
	if rc.Response.StatusCode() != consts.StatusServiceUnavailable {
		t.Fatalf("expected 503 when intake is full, got %d", rc.Response.StatusCode())
	}
}
