package messaging

import (
	"fmt"
	"strings"

	"github.com/emberfell/mud/internal/auth"
	"github.com/emberfell/mud/internal/persist"
)

// PlayerSubject is the NATS subject a player's session loop subscribes to.
// The account name is lowercased so publishers and subscribers land on the
// same subject no matter how the player typed their name at login.
func PlayerSubject(username string) string {
	return fmt.Sprintf("player-%s", strings.ToLower(username))
}

// RoomPublisher fans a room broadcast out to the player subjects of everyone
// currently in the room. Room membership comes from the session registry
// (who is online) and the gateway (where they are).
type RoomPublisher struct {
	server   *NatsServer
	sessions *auth.Registry
	gateway  persist.Gateway
}

func NewRoomPublisher(server *NatsServer, sessions *auth.Registry, gateway persist.Gateway) *RoomPublisher {
	return &RoomPublisher{
		server:   server,
		sessions: sessions,
		gateway:  gateway,
	}
}

func (p *RoomPublisher) PublishToRoom(roomId string, exclude []string, data []byte) error {
	excludeSet := make(map[string]bool, len(exclude))
	for _, username := range exclude {
		excludeSet[username] = true
	}

	var firstErr error
	for _, username := range p.sessions.Active() {
		if excludeSet[username] {
			continue
		}
		room, ok := p.gateway.Room(username)
		if !ok || room != roomId {
			continue
		}
		if err := p.server.Publish(PlayerSubject(username), data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *RoomPublisher) PublishToPlayer(username string, data []byte) error {
	return p.server.Publish(PlayerSubject(username), data)
}
