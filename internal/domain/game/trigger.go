package game

import (
	"regexp"
	"strings"
)

const (
	CommandTrigger   = "/dnd"
	CommandInventory = "/bag"
)

var mentionRe = regexp.MustCompile(`^@(\w+)`)

// IsTrigger reports whether the text invokes the event command.
func IsTrigger(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), CommandTrigger)
}

// IsInventory reports whether the text invokes the inventory command.
func IsInventory(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), CommandInventory)
}

// ParseTrigger extracts the optional @target mention and the free-text
// action description from a trigger message. The target keeps its "@"
// prefix; description is "" when nothing remains after trimming. The
// mentioned handle is not validated against any user list; it is the
// literal authorization key.
func ParseTrigger(text string) (target, description string) {
	rest := strings.TrimSpace(text)
	rest = strings.TrimSpace(strings.Replace(rest, CommandTrigger, "", 1))

	if m := mentionRe.FindString(rest); m != "" {
		target = m
		rest = strings.TrimSpace(rest[len(m):])
	}
	return target, rest
}
