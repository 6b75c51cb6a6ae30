package render

import (
	"fmt"
	"strings"

	"tavernbot/internal/app/ports"
	"tavernbot/internal/domain/game"
)

// EventHeader lays out the unresolved event: persona header, intro
// narration, check label and difficulty. The roll result is appended by
// EventResolved once the die lands.
func EventHeader(s game.Session) string {
	var b strings.Builder
	b.WriteString("🎭 Event " + s.Persona.Title())
	if s.Target != "" {
		b.WriteString(" for " + s.Target)
	}
	fmt.Fprintf(&b, "\n\n%s\n\n🎲 Check: %s\nDifficulty: %d", s.Intro, s.CheckType, s.DC)
	return b.String()
}

// EventResolved renders the full event text: header, roll result,
// outcome narration and the optional loot block.
func EventResolved(s game.Session, outcome string, loot *game.Item) string {
	var b strings.Builder
	b.WriteString(EventHeader(s))

	verdict := "FAILURE"
	marker := "💥"
	if s.Success {
		verdict = "SUCCESS"
		marker = "🔓"
	}
	fmt.Fprintf(&b, "\n\n🎲 Roll: %d\nDifficulty: %d — %s", s.Roll, s.DC, verdict)
	fmt.Fprintf(&b, "\n\n%s The story continues:\n%s", marker, outcome)

	if loot != nil {
		fmt.Fprintf(&b, "\n\n🎁 Loot: %s", loot.Name)
		if mods := FormatStats(loot.Stats); mods != "" {
			fmt.Fprintf(&b, " (%s)", mods)
		}
		if loot.Description != "" {
			b.WriteString("\n" + loot.Description)
		}
	}
	return b.String()
}

func FormatStats(mods []game.StatModifier) string {
	if len(mods) == 0 {
		return ""
	}
	parts := make([]string, 0, len(mods))
	for _, m := range mods {
		parts = append(parts, m.String())
	}
	return strings.Join(parts, ", ")
}

// ClaimWon appends the claim notice to the previously rendered event text.
func ClaimWon(rendered string, item game.Item, username string) string {
	who := "The roller"
	if username != "" {
		who = "@" + username
	}
	return fmt.Sprintf("%s\n\n✅ %s claimed %s!", rendered, who, item.Name)
}

// ClaimLost marks a claim that lost the race to another owner.
func ClaimLost(rendered string, item game.Item) string {
	return fmt.Sprintf("%s\n\n❌ %s was already taken.", rendered, item.Name)
}

func RollKeyboard(token game.Token) ports.Keyboard {
	return ports.Keyboard{{{Text: "🎲 Roll d20", Data: game.RollCallback(token)}}}
}

func ClaimKeyboard(token game.Token) ports.Keyboard {
	return ports.Keyboard{{{Text: "🎁 Claim loot", Data: game.ClaimCallback(token)}}}
}
