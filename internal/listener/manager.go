package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/emberfell/mud/internal/player"
)

// ConnectionManager is the seam between transports and game sessions. Every
// listener hands accepted connections here.
type ConnectionManager struct {
	pm *player.Manager
}

func NewConnectionManager(pm *player.Manager) *ConnectionManager {
	return &ConnectionManager{
		pm: pm,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.pm.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
