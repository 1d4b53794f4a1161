package engine

import (
	"fmt"

	"github.com/emberfell/mud/internal/persist"
	"github.com/emberfell/mud/internal/world"
)

// Move walks the player through an exit. The departure and arrival lines are
// committed to both rooms' logs in one batch before success is reported; if
// that write fails the player is put back where they started.
func (e *Engine) Move(username, direction string) (string, error) {
	direction = world.NormalizeDirection(direction)

	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}

	ok, dest := e.catalog.CanMove(roomId, direction)
	if !ok {
		return "", NewUserErrorf("You cannot move %s from here.", direction)
	}

	departure, err := expandTemplate(departureTemplate, eventData{Name: username, Direction: direction})
	if err != nil {
		return "", fmt.Errorf("rendering departure message: %w", err)
	}
	arrival, err := expandTemplate(arrivalTemplate, eventData{Name: username, Direction: world.OppositeDirection(direction)})
	if err != nil {
		return "", fmt.Errorf("rendering arrival message: %w", err)
	}

	unlock := e.rooms.lock(roomId, dest)

	if err := e.gateway.SetRoom(username, dest); err != nil {
		unlock()
		return "", fmt.Errorf("moving player: %w", err)
	}

	// A single batch commit: either both rooms get their line or neither
	// does, so a failure cannot leave a departure with no matching arrival.
	err = e.gateway.AppendMessages([]persist.ChatMessage{
		{RoomId: roomId, Sender: username, Text: departure},
		{RoomId: dest, Sender: username, Text: arrival},
	})
	if err != nil {
		// The move is not visible to anyone yet, so walking it back keeps
		// both rooms consistent.
		rbErr := e.gateway.SetRoom(username, roomId)
		unlock()
		if rbErr != nil {
			return "", fmt.Errorf("recording move (rollback also failed: %v): %w", rbErr, err)
		}
		return "", fmt.Errorf("recording move: %w", err)
	}
	unlock()

	e.notifyRoom(roomId, departure, username)
	e.notifyRoom(dest, arrival, username)

	return fmt.Sprintf("You move %s.\n%s", direction, e.describe(dest, username)), nil
}

// Look re-renders the player's current room.
func (e *Engine) Look(username string) (string, error) {
	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}
	return e.describe(roomId, username), nil
}
