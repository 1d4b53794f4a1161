package player

import (
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/emberfell/mud/internal/engine"
	"github.com/emberfell/mud/internal/persist"
)

const maxPasswordTries = 3

// loginFlow walks a fresh connection through authentication. Unknown names
// are offered account registration; known names get a password prompt. The
// flow loops until a session is open or the connection drops.
type loginFlow struct {
	engine  *engine.Engine
	gateway persist.Gateway
}

// Run returns the session token, the account name, and the welcome text to
// show the player.
func (f *loginFlow) Run(rw io.ReadWriter) (token, username, welcome string, err error) {
	rw = ensureBuffered(rw)
	rw.Write([]byte("Welcome, traveler!\n"))

	for {
		username, err = Prompt(rw, "By what name do you wish to be known? ",
			WithValidator(func(str string) (bool, string) {
				if len(str) < 2 || len(str) > 20 {
					return false, "Names are 2-20 letters, please try another.\n"
				}
				for _, r := range str {
					if !unicode.IsLetter(r) {
						return false, "Invalid name, please try another.\n"
					}
				}
				return true, ""
			}),
		)
		if err != nil {
			return "", "", "", err
		}

		var password string
		if f.gateway.PlayerExists(username) {
			password, err = Prompt(rw, "Password: ", WithMaxTries(maxPasswordTries), WithValidator(
				func(str string) (bool, string) {
					if !f.gateway.VerifyPassword(username, str) {
						return false, "Wrong password.\n"
					}
					return true, ""
				},
			))
			if err != nil {
				return "", "", "", err
			}
		} else {
			password, err = f.register(rw, username)
			if err != nil {
				return "", "", "", err
			}
			if password == "" {
				continue
			}
		}

		token, welcome, err = f.engine.Login(username, password)
		if err == nil {
			return token, username, welcome, nil
		}

		var userErr *engine.UserError
		if !errors.As(err, &userErr) {
			return "", "", "", err
		}
		rw.Write([]byte(userErr.Message + "\n"))
	}
}

// register creates a new account and returns its password, or "" when the
// player backs out and wants a different name.
func (f *loginFlow) register(rw io.ReadWriter, username string) (string, error) {
	ok, err := PromptYN(rw, fmt.Sprintf("I don't know '%s'. Create a new account (Y/N)? ", username))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	for {
		password, err := Prompt(rw, fmt.Sprintf("Give me a password for %s: ", username))
		if err != nil {
			return "", err
		}
		confirm, err := Prompt(rw, "Please retype password: ")
		if err != nil {
			return "", err
		}

		message, err := f.engine.Register(username, password, confirm)
		if err != nil {
			var userErr *engine.UserError
			if !errors.As(err, &userErr) {
				return "", err
			}
			rw.Write([]byte(userErr.Message + "\n"))
			continue
		}

		rw.Write([]byte(message + "\n"))
		return password, nil
	}
}
