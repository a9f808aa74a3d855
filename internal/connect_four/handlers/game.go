package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"connect_four/internal/connect_four/models"
	"connect_four/internal/connect_four/protocol"
)

func handleMove(ctx context.Context, s *models.Server, p *models.Player, req protocol.MoveRequest) error {
	outcome, err := s.Game.SubmitMove(ctx, p.Number, int(req.Column), func(o models.Outcome) {
		broadcast(s, protocol.MoveOutcome{
			Column: int32(o.Column),
			Row:    int32(o.Row),
			Mover:  int32(o.Mover),
			Result: o.Result,
		})
	})
	if err != nil {
		reason, ok := rejectReason(err)
		if !ok {
			return err
		}
		log.Printf("game %s: rejected move by player %d in column %d: %v", s.Game.ID, p.Number, req.Column, err)
		return p.Send(protocol.MoveRejected{Reason: reason})
	}

	log.Printf("game %s: player %d dropped in column %d row %d (%s)", s.Game.ID, p.Number, outcome.Column, outcome.Row, outcome.Result)
	if outcome.Result != protocol.Continue {
		finishGame(s)
	}
	return nil
}

func handleChat(s *models.Server, p *models.Player, chat protocol.Chat) error {
	if strings.TrimSpace(chat.Text) == "" {
		return nil
	}
	log.Printf("game %s: chat from player %d: %s", s.Game.ID, p.Number, chat.Text)
	broadcast(s, protocol.ChatBroadcast{Sender: int32(p.Number), Text: chat.Text})
	return nil
}

// broadcast sends msg to every registered player, the sender included. A
// failed write is logged; the reader of that connection notices the broken
// connection on its own.
func broadcast(s *models.Server, msg protocol.Message) {
	for _, p := range s.Players.Players() {
		if err := p.Send(msg); err != nil {
			log.Printf("game %s: %v", s.Game.ID, err)
		}
	}
}

// finishGame is called once the final outcome has been written to every
// player.
func finishGame(s *models.Server) {
	switch winner := s.Game.Winner(); winner {
	case 0:
		log.Printf("game %s: game over, it's a draw", s.Game.ID)
	default:
		log.Printf("game %s: game over, player %d wins", s.Game.ID, winner)
	}
	for _, p := range s.Players.Players() {
		p.Finish(s.FinishGrace)
	}
}

func rejectReason(err error) (protocol.Reason, bool) {
	switch {
	case errors.Is(err, models.ErrNotYourTurn):
		return protocol.ReasonNotYourTurn, true
	case errors.Is(err, models.ErrGameAlreadyOver):
		return protocol.ReasonGameAlreadyOver, true
	case errors.Is(err, models.ErrColumnFull):
		return protocol.ReasonColumnFull, true
	case errors.Is(err, models.ErrColumnOutOfRange):
		return protocol.ReasonColumnOutOfRange, true
	default:
		return 0, false
	}
}
