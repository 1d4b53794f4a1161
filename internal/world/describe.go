package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emberfell/mud/internal/display"
)

// Describe composes the player-facing view of a room: static description,
// items currently present, other players, and exits. The viewer is excluded
// from the occupant list. Chat history is never part of the description.
func (c *Catalog) Describe(roomId, viewer string, itemIds, occupants []string) string {
	room, ok := c.rooms[roomId]
	if !ok {
		return "You are nowhere."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]\n", room.Name))
	b.WriteString(display.Wrap(room.Description))

	var itemNames []string
	for _, id := range itemIds {
		if item := c.items[id]; item != nil {
			itemNames = append(itemNames, item.Name)
		}
	}
	sort.Strings(itemNames)
	if len(itemNames) > 0 {
		b.WriteString("\n\nYou see:")
		for _, name := range itemNames {
			b.WriteString(fmt.Sprintf("\n  - %s", name))
		}
	}

	var others []string
	for _, name := range occupants {
		if !strings.EqualFold(name, viewer) {
			others = append(others, name)
		}
	}
	sort.Strings(others)
	if len(others) > 0 {
		b.WriteString(fmt.Sprintf("\n\nAlso here: %s", strings.Join(others, ", ")))
	}

	dirs := make([]string, 0, len(room.Exits))
	for dir := range room.Exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	if len(dirs) > 0 {
		b.WriteString(fmt.Sprintf("\n\nExits: %s", strings.Join(dirs, ", ")))
	} else {
		b.WriteString("\n\nThere are no obvious exits.")
	}

	return b.String()
}
