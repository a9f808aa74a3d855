package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"connect_four/internal/connect_four/config"
	"connect_four/internal/connect_four/models"

	"golang.org/x/net/websocket"
)

const (
	DefaultFinishGrace = 5 * time.Second
	readHeaderTimeout  = 5 * time.Second
)

func NewServer(address string) *models.Server {
	return &models.Server{
		ListenAddr:  address,
		FinishGrace: DefaultFinishGrace,
		ConnsChan:   make(chan net.Conn),
		Game:        models.NewGame(),
		Players:     models.NewRegistry(),
	}
}

// Serve hosts games one after another, each on a fresh server, until ctx is
// cancelled or, with cfg.Once, after the first game.
func Serve(ctx context.Context, cfg config.Config) error {
	for {
		s := NewServer(cfg.Addr)
		s.WSAddr = cfg.WSAddr
		s.FinishGrace = cfg.FinishGrace
		if err := ListenAndServe(ctx, s, nil); err != nil {
			return err
		}
		if cfg.Once || ctx.Err() != nil {
			return nil
		}
	}
}

// ListenAndServe binds the listeners, waits for two players and runs their
// sessions until both have ended. ready, when not nil, is called once the
// listeners are bound.
func ListenAndServe(ctx context.Context, s *models.Server, ready func(*models.Server)) error {
	listener, err := net.Listen("tcp", s.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.ListenAddr, err)
	}
	s.Ln = listener
	log.Printf("game %s: listening on %s", s.Game.ID, listener.Addr())

	acceptCtx, stopAccepting := context.WithCancel(ctx)
	defer stopAccepting()

	var wsServer *http.Server
	if s.WSAddr != "" {
		wsServer, err = listenWebSocket(acceptCtx, s)
		if err != nil {
			listener.Close()
			return err
		}
	}

	go AcceptNewConns(acceptCtx, s)
	if ready != nil {
		ready(s)
	}

	players, err := acceptPlayers(acceptCtx, s)
	stopAccepting()
	listener.Close()
	if wsServer != nil {
		wsServer.Close()
	}
	if err != nil {
		for _, p := range players {
			p.Close()
		}
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	log.Printf("game %s: started for players %s and %s", s.Game.ID, players[0].RemoteAddr(), players[1].RemoteAddr())
	runSessions(ctx, s, players)
	log.Printf("game %s: ended after %d moves, winner %d", s.Game.ID, s.Game.Moves(), s.Game.Winner())
	return nil
}

func AcceptNewConns(ctx context.Context, s *models.Server) {
	for {
		conn, err := s.Ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return
			}
			log.Printf("accepting connection error: %v", err)
			continue
		}

		log.Printf("new connection from %s", conn.RemoteAddr())
		offerConn(ctx, s, conn)
	}
}

// offerConn hands conn to acceptPlayers, or closes it once the game is full.
func offerConn(ctx context.Context, s *models.Server, conn net.Conn) bool {
	select {
	case s.ConnsChan <- conn:
		return true
	case <-ctx.Done():
		conn.Close()
		return false
	}
}

// acceptPlayers takes connections in arrival order, sends each its player
// number and registers it. A connection whose handshake fails is dropped and
// the slot goes to the next arrival.
func acceptPlayers(ctx context.Context, s *models.Server) ([]*models.Player, error) {
	players := make([]*models.Player, 0, models.MaxPlayers)
	for len(players) < models.MaxPlayers {
		var conn net.Conn
		select {
		case conn = <-s.ConnsChan:
		case <-ctx.Done():
			return players, ctx.Err()
		}

		p := models.NewPlayer(len(players)+1, conn)
		if err := p.SendPlayerID(); err != nil {
			log.Printf("game %s: handshake with %s failed: %v", s.Game.ID, p.RemoteAddr(), err)
			p.Close()
			continue
		}
		if err := s.Players.Add(p); err != nil {
			p.Close()
			return players, err
		}
		log.Printf("game %s: %s joined as player %d", s.Game.ID, p.RemoteAddr(), p.Number)
		players = append(players, p)
	}
	return players, nil
}

// runSessions starts one goroutine per player and waits for both. Cancelling
// ctx closes every connection, which unblocks the readers.
func runSessions(ctx context.Context, s *models.Server, players []*models.Player) {
	stop := context.AfterFunc(ctx, func() {
		for _, p := range players {
			p.Close()
		}
	})
	defer stop()

	var wg sync.WaitGroup
	for _, p := range players {
		wg.Add(1)
		go func(p *models.Player) {
			defer wg.Done()
			HandleSession(ctx, s, p)
		}(p)
	}
	wg.Wait()
}

// wsConn keeps the websocket handler alive until the session closes it.
type wsConn struct {
	*websocket.Conn
	once sync.Once
	done chan struct{}
}

func (c *wsConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(func() { close(c.done) })
	return err
}

func listenWebSocket(ctx context.Context, s *models.Server) (*http.Server, error) {
	ln, err := net.Listen("tcp", s.WSAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.WSAddr, err)
	}
	log.Printf("game %s: websocket listening on %s", s.Game.ID, ln.Addr())

	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/ws", websocket.Handler(func(ws *websocket.Conn) {
		ws.PayloadType = websocket.BinaryFrame
		conn := &wsConn{Conn: ws, done: make(chan struct{})}
		log.Printf("new websocket connection from %s", ws.Request().RemoteAddr)
		if !offerConn(ctx, s, conn) {
			return
		}
		<-conn.done
	}))

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: readHeaderTimeout}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("websocket server: %v", err)
		}
	}()
	s.WSAddr = ln.Addr().String()
	return srv, nil
}
