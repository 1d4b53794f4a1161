package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener accepts SSH connections and hands each session channel to the
// connection manager. Clients connect without SSH-level auth; accounts are
// checked at the game's own login prompt.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(l.hostKey)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	// Closing the listener unblocks Accept when shutdown is requested.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				cancelConns()
				wg.Wait()
				return nil
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.serve(connCtx, conn, config)
		}()
	}
}

// serve runs the SSH handshake, then feeds session channels into the game
// until the client disconnects or shutdown begins.
func (l *SshListener) serve(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.ErrorContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	slog.InfoContext(ctx, "ssh connection opened",
		"remote", sshConn.RemoteAddr(),
		"client", string(sshConn.ClientVersion()))

	// Closing the connection unblocks the channel loop on shutdown.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()
	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}
		l.serveSession(ctx, newChan)
	}

	slog.InfoContext(ctx, "ssh connection closed", "remote", sshConn.RemoteAddr())
}

// serveSession accepts one session channel, waits for the client's shell
// request, and runs a player session over it.
func (l *SshListener) serveSession(ctx context.Context, newChan ssh.NewChannel) {
	ch, requests, err := newChan.Accept()
	if err != nil {
		slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
		return
	}
	defer ch.Close()

	// Clients hold input back until their shell request is answered.
	shellReady := make(chan struct{})
	go answerRequests(requests, shellReady)

	select {
	case <-shellReady:
	case <-ctx.Done():
		return
	}

	l.cm.AcceptConnection(ctx, newLineEndingConn(ch))
}

// answerRequests grants the first shell request and refuses everything else.
// PTY requests in particular are refused so the client keeps local echo and
// line buffering.
func answerRequests(in <-chan *ssh.Request, shellReady chan<- struct{}) {
	granted := false
	for req := range in {
		ok := req.Type == "shell" && !granted
		req.Reply(ok, nil)
		if ok {
			granted = true
			close(shellReady)
		}
	}
}
