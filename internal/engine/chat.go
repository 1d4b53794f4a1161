package engine

import (
	"fmt"
	"strings"
)

// Chat sends a message to everyone in the player's current room. The
// message is committed to the room log before success is reported.
func (e *Engine) Chat(username, text string) (string, error) {
	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}

	unlock := e.rooms.lock(roomId)
	err = e.gateway.AppendMessage(roomId, username, text, "")
	unlock()
	if err != nil {
		return "", fmt.Errorf("recording message: %w", err)
	}

	e.notifyRoom(roomId, fmt.Sprintf("%s: %s", username, text), username)

	return fmt.Sprintf("You say: %s", text), nil
}

// Yell sends a message to the current room and every room one exit away.
// Only the current room's own exits are followed; a room that links here
// without a return exit does not hear the yell.
func (e *Engine) Yell(username, text string) (string, error) {
	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}

	yellText := fmt.Sprintf("[YELL] %s", text)
	roomIds := append([]string{roomId}, e.catalog.Neighbors(roomId)...)

	unlock := e.rooms.lock(roomIds...)
	for _, id := range roomIds {
		if err := e.gateway.AppendMessage(id, username, yellText, ""); err != nil {
			unlock()
			return "", fmt.Errorf("recording yell: %w", err)
		}
	}
	unlock()

	line := fmt.Sprintf("%s: %s", username, yellText)
	for _, id := range roomIds {
		e.notifyRoom(id, line, username)
	}

	return fmt.Sprintf("You yell: %s", text), nil
}

// Whisper sends a private message to one player in the same room. The
// failure messages distinguish an unknown player, an offline player, and a
// player elsewhere, in that order. The target name is matched
// case-insensitively and echoed back in its canonical spelling.
func (e *Engine) Whisper(username, target, text string) (string, error) {
	target = strings.ToLower(strings.TrimSpace(target))

	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}

	if !e.gateway.PlayerExists(target) {
		return "", NewUserErrorf("Player '%s' does not exist.", target)
	}
	if !e.sessions.IsOnline(target) {
		return "", NewUserErrorf("Player '%s' is not online.", target)
	}
	targetRoom, ok := e.gateway.Room(target)
	if !ok || targetRoom != roomId {
		return "", NewUserErrorf("Player '%s' is not in this room.", target)
	}

	whisperText := fmt.Sprintf("[WHISPER: %s -> %s] %s", username, target, text)

	unlock := e.rooms.lock(roomId)
	err = e.gateway.AppendMessage(roomId, username, whisperText, target)
	unlock()
	if err != nil {
		return "", fmt.Errorf("recording whisper: %w", err)
	}

	e.notifyPlayer(target, whisperText)

	return fmt.Sprintf("You whisper to %s: %s", target, text), nil
}

// RoomChat returns up to limit recent messages in the player's current room
// that they are allowed to see. A non-positive limit uses the configured
// default.
func (e *Engine) RoomChat(username string, limit int) (string, error) {
	roomId, err := e.resolveRoom(username)
	if err != nil {
		return "", err
	}

	if limit <= 0 {
		limit = e.chatLimit
	}
	messages, err := e.gateway.Messages(roomId, limit, username)
	if err != nil {
		return "", fmt.Errorf("loading messages: %w", err)
	}
	if len(messages) == 0 {
		return "[No messages in this room yet]", nil
	}

	var b strings.Builder
	b.WriteString("[Recent messages]:\n")
	for _, msg := range messages {
		fmt.Fprintf(&b, "%s: %s\n", msg.Sender, msg.Text)
	}
	return b.String(), nil
}

// ActivePlayers returns the distinct usernames currently online.
func (e *Engine) ActivePlayers() []string {
	return e.sessions.Active()
}
