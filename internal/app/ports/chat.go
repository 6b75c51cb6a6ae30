package ports

import "context"

type Button struct {
	Text string
	Data string
}

// Keyboard is rows of inline buttons. A nil keyboard means no buttons;
// an empty non-nil keyboard clears existing buttons on edit.
type Keyboard [][]Button

type OutgoingMessage struct {
	ChatID   int64
	ReplyTo  int
	Text     string
	Keyboard Keyboard
	Markdown bool
}

type SentMessage struct {
	ChatID    int64
	MessageID int
}

type MessageEdit struct {
	ChatID    int64
	MessageID int
	Text      string
	Keyboard  Keyboard
	Markdown  bool
}

// ChatClient is the transport boundary: send, edit in place, and
// acknowledge button presses with an optional transient notice.
type ChatClient interface {
	Send(ctx context.Context, m OutgoingMessage) (SentMessage, error)
	Edit(ctx context.Context, e MessageEdit) error
	AnswerCallback(ctx context.Context, callbackID, notice string) error
}
