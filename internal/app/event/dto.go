package event

import "tavernbot/internal/domain/game"

// CreateRequest carries a parsed trigger message.
type CreateRequest struct {
	ChatID      int64
	MessageID   int
	UserID      int64
	Username    string
	Target      string // "@handle" or ""
	Description string
}

// ButtonRequest carries a roll or claim button press.
type ButtonRequest struct {
	Token      game.Token
	CallbackID string
	UserID     int64
	Username   string
}
