package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Result is the outcome of one dispatched command line. Quit tells the
// transport to close the session after showing the message.
type Result struct {
	Success bool
	Message string
	Quit    bool
}

const helpText = `[Available Commands]
  north/n, south/s, east/e, west/w - Move in a direction
  look - Examine the current room
  inventory/inv - View your inventory
  get/take <item> - Pick up an item
  drop <item> - Drop an item
  say/chat <message> - Send a message to the room
  yell <message> - Shout to this room and adjoining rooms
  whisper/tell <player> <message> - Send a private message
  messages - Show recent room messages
  who - List active players
  kick <player> - Disconnect a player (admin)
  ban/unban <player> - Deactivate or reactivate an account (admin)
  setrole <player> <role> - Change a player's role (admin)
  quit/logout - Leave the game
  help - Show this help message`

// Dispatch parses one command line for the session behind the token and
// executes it. The verb is case-insensitive; argument text keeps the case
// the player typed.
func (e *Engine) Dispatch(token, line string) Result {
	username, role, err := e.sessions.Resolve(token)
	if err != nil {
		return Result{Message: "Invalid or expired session.", Quit: true}
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return Result{Message: "Enter a command."}
	}

	verb, args := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		verb, args = line[:i], strings.TrimSpace(line[i+1:])
	}
	verb = strings.ToLower(verb)

	switch verb {
	case "n", "north", "s", "south", "e", "east", "w", "west":
		return e.run(func() (string, error) { return e.Move(username, verb) })

	case "look":
		return e.run(func() (string, error) { return e.Look(username) })

	case "inventory", "inv":
		return e.run(func() (string, error) { return e.GetInventory(username) })

	case "get", "take":
		if args == "" {
			return Result{Message: "Get what?"}
		}
		return e.run(func() (string, error) { return e.PickupItem(username, args) })

	case "drop":
		if args == "" {
			return Result{Message: "Drop what?"}
		}
		return e.run(func() (string, error) { return e.DropItem(username, args) })

	case "say", "chat":
		if args == "" {
			return Result{Message: "Say what?"}
		}
		return e.run(func() (string, error) { return e.Chat(username, args) })

	case "yell":
		if args == "" {
			return Result{Message: "Yell what?"}
		}
		return e.run(func() (string, error) { return e.Yell(username, args) })

	case "whisper", "tell":
		target, text, _ := strings.Cut(args, " ")
		text = strings.TrimSpace(text)
		if target == "" {
			return Result{Message: "Whisper to whom?"}
		}
		if text == "" {
			return Result{Message: "Whisper what?"}
		}
		return e.run(func() (string, error) { return e.Whisper(username, target, text) })

	case "messages":
		return e.run(func() (string, error) { return e.RoomChat(username, 0) })

	case "who":
		// The caller is always online, so listing them is noise. Leave them
		// out, the same way room descriptions leave the viewer out.
		var lines []string
		for _, p := range e.ActivePlayers() {
			if p == username {
				continue
			}
			lines = append(lines, fmt.Sprintf("  - %s", p))
		}
		if len(lines) == 0 {
			return Result{Success: true, Message: "No other players online."}
		}
		return Result{Success: true, Message: "Active players:\n" + strings.Join(lines, "\n")}

	case "kick":
		if args == "" {
			return Result{Message: "Kick whom?"}
		}
		return e.run(func() (string, error) { return e.KickPlayer(username, role, args) })

	case "ban":
		if args == "" {
			return Result{Message: "Ban whom?"}
		}
		return e.run(func() (string, error) { return e.SetPlayerActive(username, role, args, false) })

	case "unban":
		if args == "" {
			return Result{Message: "Unban whom?"}
		}
		return e.run(func() (string, error) { return e.SetPlayerActive(username, role, args, true) })

	case "setrole":
		target, roleName, _ := strings.Cut(args, " ")
		roleName = strings.TrimSpace(roleName)
		if target == "" || roleName == "" {
			return Result{Message: "Usage: setrole <player> <role>"}
		}
		return e.run(func() (string, error) { return e.SetPlayerRole(username, role, target, roleName) })

	case "help":
		return Result{Success: true, Message: helpText}

	case "quit", "logout":
		return Result{Success: true, Message: e.Logout(token), Quit: true}

	default:
		return Result{Message: fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", verb)}
	}
}

// run executes a command and folds its outcome into a Result. Player
// mistakes surface as their message; anything else is logged and reported
// generically.
func (e *Engine) run(cmd func() (string, error)) Result {
	message, err := cmd()
	if err == nil {
		return Result{Success: true, Message: message}
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return Result{Message: userErr.Message}
	}
	var forbidden *ForbiddenError
	if errors.As(err, &forbidden) {
		return Result{Message: forbidden.Error()}
	}

	slog.Error("command failed", "error", err)
	return Result{Message: "Something went wrong. Please try again."}
}
