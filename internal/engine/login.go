package engine

import (
	"fmt"
	"strings"

	"github.com/emberfell/mud/internal/auth"
	"github.com/emberfell/mud/internal/display"
)

const (
	minUsernameLen = 2
	maxUsernameLen = 20
	minPasswordLen = 8
)

// Login verifies credentials and opens a session. On success it returns the
// session token and a welcome message that includes the player's current
// room. Credential failures are deliberately vague so usernames cannot be
// enumerated. The username is lowercased up front so the session, chat
// sender names, and room occupancy all use one canonical spelling no matter
// how the player typed it.
func (e *Engine) Login(username, password string) (token string, message string, err error) {
	username = strings.ToLower(strings.TrimSpace(username))

	if !e.gateway.PlayerExists(username) {
		return "", "", NewUserError("Invalid username or password.")
	}
	if !e.gateway.VerifyPassword(username, password) {
		return "", "", NewUserError("Invalid username or password.")
	}
	if !e.gateway.IsActive(username) {
		return "", "", NewUserError("This account has been deactivated. Please contact an administrator.")
	}

	roleName, ok := e.gateway.Role(username)
	if !ok {
		return "", "", NewUserError("Failed to retrieve account information.")
	}
	role := auth.RoleOf(roleName)

	token, err = e.sessions.Create(username, role)
	if err != nil {
		return "", "", fmt.Errorf("creating session: %w", err)
	}

	roomId, err := e.resolveRoom(username)
	if err != nil {
		e.sessions.Destroy(token)
		return "", "", err
	}

	message, err = expandTemplate(welcomeTemplate, eventData{
		Name: username,
		Role: display.Title(role.String()),
		Room: e.describe(roomId, username),
	})
	if err != nil {
		e.sessions.Destroy(token)
		return "", "", fmt.Errorf("rendering welcome message: %w", err)
	}

	return token, message, nil
}

// Register creates a new account with the default player role. It does not
// open a session; the caller logs in afterwards.
func (e *Engine) Register(username, password, confirm string) (string, error) {
	username = strings.TrimSpace(username)

	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return "", NewUserErrorf("Username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if e.gateway.PlayerExists(username) {
		return "", NewUserError("Username already taken")
	}
	if password != confirm {
		return "", NewUserError("Passwords do not match")
	}
	if len(password) < minPasswordLen {
		return "", NewUserErrorf("Password must be at least %d characters", minPasswordLen)
	}

	err := e.gateway.CreatePlayer(username, password, auth.RolePlayer.String())
	if err != nil {
		return "", fmt.Errorf("creating player: %w", err)
	}

	return fmt.Sprintf("Account created successfully! You can now login as %s.", username), nil
}

// Logout closes the session behind the token. Unknown tokens are a no-op
// with a generic farewell.
func (e *Engine) Logout(token string) string {
	username, _, err := e.sessions.Resolve(token)
	e.sessions.Destroy(token)
	if err != nil {
		return "Goodbye!"
	}
	return fmt.Sprintf("Goodbye, %s!", username)
}
