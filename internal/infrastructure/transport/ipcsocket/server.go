// Package ipcsocket provides a reference implementation of the control-plane
// IPC transport (§6.1): a Unix domain socket carrying gob-encoded
// ipc.Envelope requests and ipc.Reply responses, one request-reply pair
// at a time per connection. The wire format itself is an explicit
// non-goal of the specification; this adapter exists so host.Host has a
// concrete Transport to drive end to end.
package ipcsocket

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/coreward/activation-host/internal/application/dispatcher"
	"github.com/coreward/activation-host/internal/domain/ipc"
	"github.com/coreward/activation-host/internal/domain/shared"
)

// Server listens on a Unix domain socket and dispatches each decoded
// envelope to the registered dispatcher, replying on the same connection.
type Server struct {
	mu sync.Mutex

	socketPath string
	log        zerolog.Logger

	listener   net.Listener
	dispatcher *dispatcher.Dispatcher

	conns    map[net.Conn]struct{}
	wg       sync.WaitGroup
	serveCtx context.Context
	cancel   context.CancelFunc
}

// New constructs a Server bound to socketPath. Listen creates the socket
// file; any stale file left behind by a previous, uncleanly-terminated
// process is removed first.
func New(socketPath string, log zerolog.Logger) *Server {
	return &Server{socketPath: socketPath, log: log, conns: make(map[net.Conn]struct{})}
}

// RegisterDispatcher attaches the dispatcher inbound envelopes route to.
// Must be called before Listen.
func (s *Server) RegisterDispatcher(d *dispatcher.Dispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatcher = d
}

// Listen creates the Unix domain socket and starts accepting connections
// on a background goroutine. It returns once the socket is ready to
// accept; connection handling continues until Close is called.
func (s *Server) Listen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return fmt.Errorf("ipcsocket: %w", shared.ErrInvalidState)
	}

	if err := os.RemoveAll(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}

	s.listener = listener
	s.serveCtx, s.cancel = context.WithCancel(context.Background())

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	dec := gob.NewDecoder(conn)
	enc := gob.NewEncoder(conn)

	for {
		var env ipc.Envelope
		if err := dec.Decode(&env); err != nil {
			return
		}

		s.mu.Lock()
		d := s.dispatcher
		ctx := s.serveCtx
		s.mu.Unlock()

		var reply ipc.Reply
		if d == nil {
			reply = ipc.Reply{Kind: ipc.ErrorKindConfigurationError}
		} else {
			reply = d.Dispatch(ctx, env)
		}

		if err := enc.Encode(&reply); err != nil {
			s.log.Debug().Err(err).Msg("ipcsocket: reply encode failed, dropping connection")
			return
		}
	}
}

// Close stops accepting new connections, closes every open connection,
// removes the socket file, and waits for in-flight handlers to return.
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	listener := s.listener
	cancel := s.cancel
	conns := make([]net.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.listener = nil
	s.mu.Unlock()

	if listener == nil {
		return nil
	}
	if cancel != nil {
		cancel()
	}

	var firstErr error
	if err := listener.Close(); err != nil {
		firstErr = err
	}
	for _, c := range conns {
		c.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if firstErr == nil {
			firstErr = ctx.Err()
		}
	}

	if err := os.RemoveAll(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) && firstErr == nil {
		firstErr = err
	}

	return firstErr
}

// Address returns the socket path this server listens on.
func (s *Server) Address() string { return s.socketPath }
