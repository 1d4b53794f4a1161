package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/emberfell/mud/internal/storage"
)

// Catalog is the read-only world graph: rooms, exits, and item definitions.
// It is built once at startup and never mutated afterwards; the engine tracks
// which items are currently present in each room separately.
type Catalog struct {
	rooms map[string]*Room
	items map[string]*Item
}

// NewCatalog builds a catalog from the room and item stores, verifying that
// every exit destination and every room item reference an existing entry.
func NewCatalog(rooms storage.Storer[*Room], items storage.Storer[*Item]) (*Catalog, error) {
	c := &Catalog{
		rooms: rooms.GetAll(),
		items: items.GetAll(),
	}

	el := errors.NewErrorList()
	for id, room := range c.rooms {
		for dir, dest := range room.Exits {
			if _, ok := c.rooms[dest]; !ok {
				el.Add(fmt.Errorf("room %s: exit %s leads to unknown room %q", id, dir, dest))
			}
		}
		for _, itemId := range room.Items {
			if _, ok := c.items[itemId]; !ok {
				el.Add(fmt.Errorf("room %s: unknown item %q", id, itemId))
			}
		}
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

// RoomIds returns the ids of every room in the catalog, sorted.
func (c *Catalog) RoomIds() []string {
	ids := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Room returns the room with the given id, or nil.
func (c *Catalog) Room(id string) *Room {
	return c.rooms[id]
}

// Item returns the item with the given id, or nil.
func (c *Catalog) Item(id string) *Item {
	return c.items[id]
}

// FindItem returns the id of the item whose display name matches name,
// case-insensitively, searching only the given candidate ids.
func (c *Catalog) FindItem(name string, candidates []string) (string, bool) {
	for _, id := range candidates {
		item := c.items[id]
		if item != nil && strings.EqualFold(item.Name, name) {
			return id, true
		}
	}
	return "", false
}

// CanMove reports whether the room has an exit in the given direction and,
// if so, the destination room id. Unknown rooms and absent exits are not
// errors, just a false result.
func (c *Catalog) CanMove(fromRoomId, direction string) (bool, string) {
	room, ok := c.rooms[fromRoomId]
	if !ok {
		return false, ""
	}

	dest, ok := room.Exits[NormalizeDirection(direction)]
	if !ok {
		return false, ""
	}

	return true, dest
}

// Neighbors returns the rooms reachable by a single outgoing exit from the
// given room, deduplicated. The result follows only the room's own exit
// list; return paths are not considered.
func (c *Catalog) Neighbors(roomId string) []string {
	room, ok := c.rooms[roomId]
	if !ok {
		return nil
	}

	seen := make(map[string]bool, len(room.Exits))
	var out []string
	for _, dest := range room.Exits {
		if seen[dest] {
			continue
		}
		seen[dest] = true
		out = append(out, dest)
	}
	sort.Strings(out)
	return out
}
