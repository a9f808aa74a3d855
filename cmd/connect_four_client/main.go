package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"connect_four/internal/connect_four/client"
	"connect_four/internal/connect_four/config"
	"connect_four/internal/connect_four/models"
	"connect_four/internal/connect_four/protocol"
)

func main() {
	cfg, err := config.ParseClientConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	var c *client.Client
	if cfg.WSURL != "" {
		c, err = client.DialWebSocket(cfg.WSURL, "http://localhost/")
	} else {
		c, err = client.Dial(context.Background(), cfg.Addr)
	}
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer c.Close()

	fmt.Printf("You are player %d (%s). Type a column 0-%d to move, anything else to chat, /quit to leave.\n",
		c.Player, cellSymbol(models.PlayerCell(c.Player)), models.Columns-1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		watchEvents(c, os.Stdout)
	}()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case <-done:
			return
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) == "/quit" {
				return
			}
			if err := sendLine(c, line); err != nil {
				log.Printf("send: %v", err)
				return
			}
		}
	}
}

// sendLine sends "3" or "move 3" as a move and anything else as chat.
func sendLine(c *client.Client, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if column, ok := parseMove(line); ok {
		return c.SendMove(column)
	}
	return c.SendChat(line)
}

func parseMove(line string) (int, bool) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "move "))
	column, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return column, true
}

// watchEvents prints server frames until the connection ends, keeping a local
// copy of the board to render.
func watchEvents(c *client.Client, out io.Writer) {
	var board models.Board
	for {
		msg, err := c.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "Connection closed by server.")
			} else {
				fmt.Fprintf(out, "Connection error: %v\n", err)
			}
			return
		}
		fmt.Fprint(out, describe(&board, c.Player, msg))
	}
}

func describe(board *models.Board, self int, msg protocol.Message) string {
	switch m := msg.(type) {
	case protocol.MoveOutcome:
		_, _ = board.DropDisc(int(m.Column), models.PlayerCell(int(m.Mover)))
		text := getBoard(board)
		switch m.Result {
		case protocol.Win:
			if int(m.Mover) == self {
				return text + "Game Over. You win!\n"
			}
			return text + "Game Over. Your opponent wins.\n"
		case protocol.Draw:
			return text + "Game Over. It's a draw!\n"
		}
		if int(m.Mover) == self {
			return text + "Waiting for your opponent's turn...\n"
		}
		return text + "Your move:\n"
	case protocol.ChatBroadcast:
		return fmt.Sprintf("[player %d] %s\n", m.Sender, m.Text)
	case protocol.MoveRejected:
		return fmt.Sprintf("Invalid move: %s. Try again.\n", m.Reason)
	case protocol.PeerLeft:
		return fmt.Sprintf("Player %d left the game.\n", m.Player)
	default:
		return ""
	}
}
