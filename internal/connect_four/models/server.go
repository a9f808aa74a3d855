package models

import (
	"errors"
	"net"
	"sync"
	"time"
)

const MaxPlayers = 2

var (
	ErrRegistryFull  = errors.New("game already has two players")
	ErrInvalidPlayer = errors.New("player number must be 1 or 2")
)

// Server hosts exactly one game between two connections.
type Server struct {
	ListenAddr  string
	WSAddr      string
	FinishGrace time.Duration
	Ln          net.Listener
	ConnsChan   chan net.Conn

	Game    *Game
	Players *Registry
}

// Registry holds the sessions of one game. It accepts at most MaxPlayers
// additions over its lifetime; removing a player does not free a slot.
type Registry struct {
	mu      sync.Mutex
	players [MaxPlayers]*Player
	added   int
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(p *Player) error {
	if p.Number < 1 || p.Number > MaxPlayers {
		return ErrInvalidPlayer
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.added == MaxPlayers || r.players[p.Number-1] != nil {
		return ErrRegistryFull
	}
	r.players[p.Number-1] = p
	r.added++
	return nil
}

func (r *Registry) Remove(p *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.players {
		if cur == p {
			r.players[i] = nil
		}
	}
}

// Players returns the registered players ordered by number.
func (r *Registry) Players() []*Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Player, 0, MaxPlayers)
	for _, p := range r.players {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Peer returns the opponent of player number, or nil if it is gone.
func (r *Registry) Peer(number int) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p != nil && p.Number != number {
			return p
		}
	}
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.players {
		if p != nil {
			n++
		}
	}
	return n
}
