package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"os"

	"connect_four/internal/connect_four/models"
	"connect_four/internal/connect_four/protocol"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "connect_four/handlers"

// HandleSession reads and dispatches frames from one player until the
// connection ends. After the game is finished, remaining inbound frames are
// discarded while the server waits for the client to close.
func HandleSession(ctx context.Context, s *models.Server, p *models.Player) {
	defer endSession(s, p)

	dec := protocol.NewDecoder(p.Conn)
	for {
		msg, err := dec.DecodeRequest()
		if err != nil {
			logReadError(s, p, err)
			return
		}
		if p.Finished() {
			continue
		}
		if err := dispatch(ctx, s, p, msg); err != nil {
			log.Printf("game %s: player %d: %v", s.Game.ID, p.Number, err)
			return
		}
	}
}

func dispatch(ctx context.Context, s *models.Server, p *models.Player, msg protocol.Message) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "session.Dispatch", trace.WithAttributes(
		attribute.String("game.id", s.Game.ID),
		attribute.Int("game.player", p.Number),
		attribute.String("message.kind", msg.Kind().String()),
	))
	defer span.End()

	switch m := msg.(type) {
	case protocol.Chat:
		return handleChat(s, p, m)
	case protocol.MoveRequest:
		return handleMove(ctx, s, p, m)
	default:
		return protocol.ErrUnknownMessage
	}
}

func logReadError(s *models.Server, p *models.Player, err error) {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		log.Printf("game %s: player %d disconnected", s.Game.ID, p.Number)
	case errors.Is(err, os.ErrDeadlineExceeded):
		log.Printf("game %s: player %d did not close after the game ended", s.Game.ID, p.Number)
	case errors.Is(err, protocol.ErrUnknownKind):
		log.Printf("game %s: player %d protocol desync, dropping connection: %v", s.Game.ID, p.Number, err)
	default:
		log.Printf("game %s: player %d read error: %v", s.Game.ID, p.Number, err)
	}
}

// endSession releases the connection. If the game was still running the
// remaining player is told and the game is abandoned.
func endSession(s *models.Server, p *models.Player) {
	p.Close()
	s.Players.Remove(p)

	if !s.Game.Abandon() {
		return
	}
	log.Printf("game %s: abandoned after player %d left", s.Game.ID, p.Number)
	peer := s.Players.Peer(p.Number)
	if peer == nil {
		return
	}
	if err := peer.Send(protocol.PeerLeft{Player: int32(p.Number)}); err != nil {
		log.Printf("game %s: %v", s.Game.ID, err)
	}
	peer.Finish(s.FinishGrace)
}
