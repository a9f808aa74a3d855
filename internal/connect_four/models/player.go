package models

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"connect_four/internal/connect_four/protocol"
)

// Player is the server side of one connected client.
type Player struct {
	Number int
	Conn   net.Conn

	mu       sync.Mutex
	enc      *protocol.Encoder
	finished atomic.Bool
	closed   atomic.Bool
}

func NewPlayer(number int, conn net.Conn) *Player {
	return &Player{
		Number: number,
		Conn:   conn,
		enc:    protocol.NewEncoder(conn),
	}
}

// SendPlayerID writes the handshake. It must be the first write on the
// connection.
func (p *Player) SendPlayerID() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enc.WritePlayerID(int32(p.Number)); err != nil {
		return fmt.Errorf("failed to send player id to player %d: %w", p.Number, err)
	}
	return nil
}

// Send writes one frame. Concurrent calls never interleave.
func (p *Player) Send(msg protocol.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enc.Encode(msg); err != nil {
		return fmt.Errorf("failed to send %s to player %d: %w", msg.Kind(), p.Number, err)
	}
	return nil
}

// Finish stops outbound traffic after the final frame. TCP connections are
// half-closed so the client reads EOF right after the last frame; the read
// side stays open for grace so the client can close first.
func (p *Player) Finish(grace time.Duration) {
	if !p.finished.CompareAndSwap(false, true) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if cw, ok := p.Conn.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}
	_ = p.Conn.SetReadDeadline(time.Now().Add(grace))
}

func (p *Player) Finished() bool {
	return p.finished.Load()
}

// Close closes the connection. It is safe to call more than once.
func (p *Player) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.Conn.Close()
}

func (p *Player) RemoteAddr() string {
	if addr := p.Conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
