package engine

import (
	"fmt"
	"log/slog"

	"github.com/emberfell/mud/internal/auth"
	"github.com/emberfell/mud/internal/persist"
	"github.com/emberfell/mud/internal/world"
)

const (
	// DefaultSpawnRoom is where new and displaced players land.
	DefaultSpawnRoom = "spawn"

	// DefaultChatLimit bounds how many recent messages a room history
	// request returns.
	DefaultChatLimit = 50
)

// Publisher delivers live messages to connected players. Delivery is best
// effort; durable history goes through the gateway before anything is
// published.
type Publisher interface {
	PublishToRoom(roomId string, exclude []string, data []byte) error
	PublishToPlayer(username string, data []byte) error
}

// Engine executes game commands against the world graph, the session
// registry, and the persistence gateway. All player-visible behavior lives
// here; transports only shuttle lines in and out.
type Engine struct {
	catalog   *world.Catalog
	gateway   persist.Gateway
	sessions  *auth.Registry
	publisher Publisher
	rooms     *roomSet
	spawnRoom string
	chatLimit int
}

type EngineOpt func(*Engine)

// WithSpawnRoom overrides the room new players start in.
func WithSpawnRoom(id string) EngineOpt {
	return func(e *Engine) {
		if id != "" {
			e.spawnRoom = id
		}
	}
}

// WithChatLimit overrides how many recent messages the history command shows.
func WithChatLimit(n int) EngineOpt {
	return func(e *Engine) {
		if n > 0 {
			e.chatLimit = n
		}
	}
}

func NewEngine(catalog *world.Catalog, gateway persist.Gateway, sessions *auth.Registry, publisher Publisher, opts ...EngineOpt) (*Engine, error) {
	e := &Engine{
		catalog:   catalog,
		gateway:   gateway,
		sessions:  sessions,
		publisher: publisher,
		rooms:     newRoomSet(catalog),
		spawnRoom: DefaultSpawnRoom,
		chatLimit: DefaultChatLimit,
	}
	for _, opt := range opts {
		opt(e)
	}

	if catalog.Room(e.spawnRoom) == nil {
		return nil, fmt.Errorf("spawn room %q does not exist", e.spawnRoom)
	}

	return e, nil
}

// occupants returns the online players currently in the given room, sorted.
func (e *Engine) occupants(roomId string) []string {
	var out []string
	for _, name := range e.sessions.Active() {
		room, ok := e.gateway.Room(name)
		if ok && room == roomId {
			out = append(out, name)
		}
	}
	return out
}

// resolveRoom returns the room the player is standing in, falling back to
// the spawn room when the stored room no longer exists in the catalog.
func (e *Engine) resolveRoom(username string) (string, error) {
	roomId, ok := e.gateway.Room(username)
	if !ok || e.catalog.Room(roomId) == nil {
		roomId = e.spawnRoom
		if err := e.gateway.SetRoom(username, roomId); err != nil {
			return "", fmt.Errorf("placing player in spawn room: %w", err)
		}
	}
	return roomId, nil
}

// describe renders the room as the viewer sees it, using the live item set
// rather than the catalog's initial contents.
func (e *Engine) describe(roomId, viewer string) string {
	state := e.rooms.get(roomId)

	var itemIds []string
	if state != nil {
		itemIds = state.list()
	}

	return e.catalog.Describe(roomId, viewer, itemIds, e.occupants(roomId))
}

// notifyRoom publishes a live line to everyone in the room except the
// excluded players. Failures are logged, not surfaced; the durable record
// has already been written.
func (e *Engine) notifyRoom(roomId, line string, exclude ...string) {
	err := e.publisher.PublishToRoom(roomId, exclude, []byte(line))
	if err != nil {
		slog.Warn("publishing room message", "room", roomId, "error", err)
	}
}

func (e *Engine) notifyPlayer(username, line string) {
	err := e.publisher.PublishToPlayer(username, []byte(line))
	if err != nil {
		slog.Warn("publishing player message", "player", username, "error", err)
	}
}
