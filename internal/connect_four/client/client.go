// Package client speaks the connect four wire protocol from the player side.
package client

import (
	"context"
	"fmt"
	"net"

	"connect_four/internal/connect_four/protocol"

	"golang.org/x/net/websocket"
)

// Client is one player's connection to the server. Sends and receives may run
// on different goroutines, but each direction must be used by one goroutine
// at a time.
type Client struct {
	Player int

	conn net.Conn
	enc  *protocol.Encoder
	dec  *protocol.Decoder
}

// Dial connects over TCP and waits for the player id handshake.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return New(conn)
}

// DialWebSocket connects to the server's /ws endpoint and waits for the
// handshake.
func DialWebSocket(url, origin string) (*Client, error) {
	ws, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	ws.PayloadType = websocket.BinaryFrame
	return New(ws)
}

// New wraps an established connection and reads the handshake from it. The
// connection is closed if the handshake fails.
func New(conn net.Conn) (*Client, error) {
	c := &Client{
		conn: conn,
		enc:  protocol.NewEncoder(conn),
		dec:  protocol.NewDecoder(conn),
	}
	id, err := c.dec.ReadPlayerID()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("read player id: %w", err)
	}
	c.Player = int(id)
	return c, nil
}

func (c *Client) SendMove(column int) error {
	return c.enc.Encode(protocol.MoveRequest{Column: int32(column)})
}

func (c *Client) SendChat(text string) error {
	return c.enc.Encode(protocol.Chat{Text: text})
}

// Next blocks until the next server frame arrives.
func (c *Client) Next() (protocol.Message, error) {
	return c.dec.DecodeEvent()
}

// Conn exposes the underlying connection, mainly for deadlines.
func (c *Client) Conn() net.Conn {
	return c.conn
}

func (c *Client) Close() error {
	return c.conn.Close()
}
