package player

import (
	"bufio"
	"context"
	"io"

	"github.com/emberfell/mud/internal/engine"
)

// session is one authenticated connection playing the game. Writes to the
// connection happen only from the play loop, so live messages and command
// responses never interleave mid-line.
type session struct {
	conn     io.ReadWriter
	engine   *engine.Engine
	token    string
	username string

	msgs chan []byte
}

func (s *session) play(ctx context.Context) error {
	// Read input lines into a channel so the loop can also react to live
	// messages and shutdown.
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.writeLine("\nThe server is shutting down. Goodbye!")
			return ctx.Err()

		case msg := <-s.msgs:
			if err := s.writeLine("\n" + string(msg)); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			res := s.engine.Dispatch(s.token, line)
			if res.Message != "" {
				if err := s.writeLine(res.Message); err != nil {
					return err
				}
			}
			if res.Quit {
				return nil
			}

			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

func (s *session) prompt() error {
	_, err := s.conn.Write([]byte("> "))
	return err
}

func (s *session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(msg + "\n"))
	return err
}
