package game

import "time"

// Token identifies one in-flight narrated event. It rides inside button
// callback data, so it must stay short and opaque.
type Token string

// Session is the full context of one challenge, from trigger to claim.
// Held only in process memory; never persisted.
type Session struct {
	Token       Token
	ChatID      int64
	MessageID   int
	ReplyTo     int
	DC          int
	CheckType   string
	Target      string // "@handle" of the mentioned user, or ""
	Description string
	Intro       string
	Persona     Persona

	// Exactly one of AllowedUsername / AllowedID is set: username mode
	// when a target was mentioned, id mode otherwise.
	AllowedUsername string
	AllowedID       int64

	Used     bool
	RollerID int64
	Roll     int
	Success  bool

	DropItemID   string
	RenderedText string

	CreatedAt time.Time
}

// CanRoll applies the authorization rule for the roll button.
// Username mode compares the literal handle, case-sensitively; id mode
// admits only the triggering user. Fail-closed on missing identity.
func (s Session) CanRoll(userID int64, username string) bool {
	if s.AllowedUsername != "" {
		return username != "" && username == s.AllowedUsername
	}
	return s.AllowedID != 0 && userID == s.AllowedID
}

// CanClaim admits only the user who performed the roll.
func (s Session) CanClaim(userID int64) bool {
	return s.Used && s.RollerID != 0 && userID == s.RollerID
}
