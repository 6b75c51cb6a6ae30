package render

import (
	"fmt"
	"strings"

	"tavernbot/internal/app/ports"
	"tavernbot/internal/domain/game"
)

// Inventory lays out a player's items newest-first with equip markers
// and stat modifiers, plus one toggle button per item.
func Inventory(ownerID int64, username string, items []ports.PlayerItemRecord, catalog game.Catalog, maxEquipped int) (string, ports.Keyboard) {
	who := "Your"
	if username != "" {
		who = "@" + username + "'s"
	}

	if len(items) == 0 {
		return fmt.Sprintf("🎒 %s bag is empty. Win events to find loot!", who), nil
	}

	equipped := 0
	for _, rec := range items {
		if rec.Equipped {
			equipped++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎒 %s bag (%d/%d equipped)\n", who, equipped, maxEquipped)

	var kb ports.Keyboard
	for _, rec := range items {
		item, ok := catalog.Get(rec.ItemID)
		if !ok {
			// Catalog and ownership table can drift if the config file
			// shrinks; show the raw id rather than dropping the row.
			item = game.Item{ID: rec.ItemID, Name: rec.ItemID}
		}

		marker := "▫️"
		action := "Equip"
		if rec.Equipped {
			marker = "🟢"
			action = "Unequip"
		}
		fmt.Fprintf(&b, "\n%s %s", marker, item.Name)
		if mods := FormatStats(item.Stats); mods != "" {
			fmt.Fprintf(&b, " — %s", mods)
		}

		kb = append(kb, []ports.Button{{
			Text: fmt.Sprintf("%s %s", action, item.Name),
			Data: game.EquipCallback(ownerID, rec.ItemID, !rec.Equipped),
		}})
	}
	return b.String(), kb
}
