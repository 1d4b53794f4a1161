package engine

import (
	"sort"
	"sync"

	"github.com/emberfell/mud/internal/world"
)

// roomState is the live, mutable portion of a room: the items currently on
// the ground. The lock also serializes message appends for the room, so a
// move touching two rooms cannot interleave with a pickup or chat in either.
type roomState struct {
	mu    sync.Mutex
	items map[string]bool
}

// list returns a sorted snapshot of the items on the floor. Safe to call
// without the room lock held.
func (r *roomState) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked()
}

// listLocked is list for callers that already hold the room lock.
func (r *roomState) listLocked() []string {
	out := make([]string, 0, len(r.items))
	for id := range r.items {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// roomSet holds live state for every catalog room. The map itself is fixed
// after construction; only the per-room contents change.
type roomSet struct {
	rooms map[string]*roomState
}

func newRoomSet(catalog *world.Catalog) *roomSet {
	roomIds := catalog.RoomIds()
	s := &roomSet{rooms: make(map[string]*roomState, len(roomIds))}
	for _, id := range roomIds {
		items := make(map[string]bool)
		if room := catalog.Room(id); room != nil {
			for _, itemId := range room.Items {
				items[itemId] = true
			}
		}
		s.rooms[id] = &roomState{items: items}
	}
	return s
}

func (s *roomSet) get(id string) *roomState {
	return s.rooms[id]
}

// lock acquires the locks for the given rooms in lexicographic id order,
// skipping duplicates and unknown rooms. Callers touching more than one
// room must go through here so lock order stays fixed.
func (s *roomSet) lock(roomIds ...string) (unlock func()) {
	ids := make([]string, 0, len(roomIds))
	seen := make(map[string]bool, len(roomIds))
	for _, id := range roomIds {
		if seen[id] || s.rooms[id] == nil {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		s.rooms[id].mu.Lock()
	}
	return func() {
		for i := len(ids) - 1; i >= 0; i-- {
			s.rooms[ids[i]].mu.Unlock()
		}
	}
}
