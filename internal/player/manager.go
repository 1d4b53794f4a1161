package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/emberfell/mud/internal/engine"
	"github.com/emberfell/mud/internal/messaging"
	"github.com/emberfell/mud/internal/persist"
)

// Manager turns raw connections into game sessions: it runs the login flow,
// wires the player's live message subscription, and hands the connection to
// the play loop.
type Manager struct {
	engine  *engine.Engine
	gateway persist.Gateway
	nats    *messaging.NatsServer
}

func NewManager(eng *engine.Engine, gateway persist.Gateway, nats *messaging.NatsServer) *Manager {
	return &Manager{
		engine:  eng,
		gateway: gateway,
		nats:    nats,
	}
}

func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	conn = ensureBuffered(conn)

	flow := &loginFlow{engine: m.engine, gateway: m.gateway}
	token, username, welcome, err := flow.Run(conn)
	if err != nil {
		return fmt.Errorf("login flow: %w", err)
	}

	// The session ends either way; a stale token is a no-op here.
	defer m.engine.Logout(token)

	msgs := make(chan []byte, 16)
	unsubscribe, err := m.nats.Subscribe(messaging.PlayerSubject(username), func(data []byte) {
		select {
		case msgs <- data:
		default:
			slog.Warn("dropping live message for slow session", "player", username)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing player channel: %w", err)
	}
	defer unsubscribe()

	s := &session{
		conn:     conn,
		engine:   m.engine,
		token:    token,
		username: username,
		msgs:     msgs,
	}

	if err := s.writeLine(welcome); err != nil {
		return err
	}

	slog.Info("session started", "player", username)
	err = s.play(ctx)
	slog.Info("session ended", "player", username)
	return err
}
