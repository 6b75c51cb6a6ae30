package game

import (
	"strconv"
	"strings"
)

// CallbackKind discriminates button presses routed back to the bot.
type CallbackKind string

const (
	CallbackRoll  CallbackKind = "roll"
	CallbackClaim CallbackKind = "claim"
	CallbackEquip CallbackKind = "inv"
)

// Callback is a decoded button payload. Telegram caps callback data at
// 64 bytes, so the encoding stays terse: "roll:<token>", "claim:<token>",
// "inv:<ownerID>:<on|off>:<itemID>".
type Callback struct {
	Kind    CallbackKind
	Token   Token
	OwnerID int64
	ItemID  string
	Equip   bool
}

func RollCallback(token Token) string {
	return string(CallbackRoll) + ":" + string(token)
}

func ClaimCallback(token Token) string {
	return string(CallbackClaim) + ":" + string(token)
}

func EquipCallback(ownerID int64, itemID string, equip bool) string {
	state := "off"
	if equip {
		state = "on"
	}
	return string(CallbackEquip) + ":" + strconv.FormatInt(ownerID, 10) + ":" + state + ":" + itemID
}

// ParseCallback decodes button payload data. Returns false for anything
// the bot did not produce.
func ParseCallback(data string) (Callback, bool) {
	kind, rest, ok := strings.Cut(data, ":")
	if !ok || rest == "" {
		return Callback{}, false
	}
	switch CallbackKind(kind) {
	case CallbackRoll:
		return Callback{Kind: CallbackRoll, Token: Token(rest)}, true
	case CallbackClaim:
		return Callback{Kind: CallbackClaim, Token: Token(rest)}, true
	case CallbackEquip:
		parts := strings.SplitN(rest, ":", 3)
		if len(parts) != 3 || parts[2] == "" {
			return Callback{}, false
		}
		ownerID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || ownerID == 0 {
			return Callback{}, false
		}
		if parts[1] != "on" && parts[1] != "off" {
			return Callback{}, false
		}
		return Callback{
			Kind:    CallbackEquip,
			OwnerID: ownerID,
			ItemID:  parts[2],
			Equip:   parts[1] == "on",
		}, true
	default:
		return Callback{}, false
	}
}
