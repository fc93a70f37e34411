package ipcsocket

import (
	"encoding/gob"
	"fmt"
	"net"
	"sync"

	"github.com/coreward/activation-host/internal/domain/ipc"
)

// Client is a minimal reference client for exercising a Server: one
// long-lived connection, request-then-reply, no pipelining. Real
// requester processes are free to speak the same wire format without
// depending on this type.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
	enc  *gob.Encoder
	dec  *gob.Decoder
}

// Dial connects to the Unix domain socket at socketPath.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", socketPath, err)
	}
	return &Client{conn: conn, enc: gob.NewEncoder(conn), dec: gob.NewDecoder(conn)}, nil
}

// Call sends env and waits for the matching reply.
func (c *Client) Call(env ipc.Envelope) (ipc.Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.enc.Encode(&env); err != nil {
		return ipc.Reply{}, fmt.Errorf("encoding request: %w", err)
	}

	var reply ipc.Reply
	if err := c.dec.Decode(&reply); err != nil {
		return ipc.Reply{}, fmt.Errorf("decoding reply: %w", err)
	}
	return reply, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}
