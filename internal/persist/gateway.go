package persist

import "time"

// ChatMessage is one row of a room's append-only message log. A non-empty
// Recipient marks a whisper, visible only to the sender and recipient; all
// other messages are room-visible.
type ChatMessage struct {
	RoomId    string
	Sender    string
	Text      string
	Recipient string
	CreatedAt time.Time
}

// Gateway is the durable storage contract the engine runs against: player
// identity, credentials and role, room assignment, inventory, and chat
// history. The engine never reaches past this interface.
type Gateway interface {
	PlayerExists(username string) bool
	VerifyPassword(username, password string) bool
	IsActive(username string) bool
	Role(username string) (string, bool)

	CreatePlayer(username, password, role string) error
	SetRole(username, role string) error
	SetActive(username string, active bool) error

	Room(username string) (string, bool)
	SetRoom(username, roomId string) error

	Inventory(username string) ([]string, error)
	SetInventory(username string, items []string) error

	AppendMessage(roomId, sender, text, recipient string) error
	// AppendMessages commits a batch of messages atomically: either every
	// entry becomes visible or none do. Used when one action writes lines to
	// more than one room.
	AppendMessages(msgs []ChatMessage) error
	// Messages returns the most recent messages in the room that are visible
	// to the viewer, oldest first, at most limit entries.
	Messages(roomId string, limit int, viewer string) ([]ChatMessage, error)
}
