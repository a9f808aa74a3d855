package main

import (
	"strconv"
	"strings"

	"connect_four/internal/connect_four/models"
)

// cellSymbol maps a cell to what the terminal shows: red for player 1,
// yellow for player 2.
func cellSymbol(cell models.CellState) string {
	switch cell {
	case models.Player1:
		return "R"
	case models.Player2:
		return "Y"
	default:
		return " "
	}
}

func getBoard(board *models.Board) string {
	var boardStr strings.Builder

	boardStr.WriteString("\n ")
	for c := 0; c < models.Columns; c++ {
		boardStr.WriteString(" " + strconv.Itoa(c) + "  ")
	}
	boardStr.WriteString("\n")

	for r := 0; r < models.Rows; r++ {
		boardStr.WriteString("|")
		for c := 0; c < models.Columns; c++ {
			boardStr.WriteString(" " + cellSymbol(board.Cell(r, c)) + " |")
		}
		boardStr.WriteString("\n")
	}
	boardStr.WriteString("+" + strings.Repeat("---+", models.Columns) + "\n")

	return boardStr.String()
}
