package player

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// bufferedConn gives the login prompts and the play loop one shared read
// buffer, so a line the client pipelined ahead is never lost between reads.
type bufferedConn struct {
	r *bufio.Reader
	io.Writer
}

func (c *bufferedConn) Read(p []byte) (int, error) { return c.r.Read(p) }

func ensureBuffered(rw io.ReadWriter) io.ReadWriter {
	if _, ok := rw.(*bufferedConn); ok {
		return rw
	}
	return &bufferedConn{r: bufio.NewReader(rw), Writer: rw}
}

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes the prompt and reads one line, re-asking while the
// validator rejects the input.
func Prompt(rw io.ReadWriter, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	bc, ok := rw.(*bufferedConn)
	if !ok {
		bc = ensureBuffered(rw).(*bufferedConn)
	}
	br := bc.r

	tries := 0
	for {
		_, err := rw.Write([]byte(prompt))
		if err != nil {
			return "", err
		}

		input, err := br.ReadString('\n')
		if err != nil {
			return "", err
		}
		input = strings.TrimRight(input, "\r\n")

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if msg != "" {
					rw.Write([]byte(msg))
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					rw.Write([]byte("Too many tries.\n"))
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

func PromptYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
