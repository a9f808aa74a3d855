package models

import (
	"errors"
	"strings"
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

var (
	ErrColumnFull       = errors.New("column is full")
	ErrColumnOutOfRange = errors.New("column out of range")
)

// CellState is the occupancy of one board cell.
type CellState int

const (
	Empty CellState = iota
	Player1
	Player2
)

// PlayerCell returns the cell state for player number 1 or 2.
func PlayerCell(player int) CellState {
	switch player {
	case 1:
		return Player1
	case 2:
		return Player2
	default:
		return Empty
	}
}

// Board is a 6x7 grid. Row 0 is the top, row Rows-1 the bottom where discs
// land first. Within a column occupied cells always form a run ending at the
// bottom row.
type Board struct {
	cells [Rows][Columns]CellState
}

// DropDisc places a disc for player in the lowest empty row of column and
// returns that row. The board is unchanged when an error is returned.
func (b *Board) DropDisc(column int, player CellState) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrColumnOutOfRange
	}
	for row := Rows - 1; row >= 0; row-- {
		if b.cells[row][column] == Empty {
			b.cells[row][column] = player
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// CheckWin reports whether the disc at (column, row) completes a line of
// ToWin discs for player along any axis.
func (b *Board) CheckWin(column, row int, player CellState) bool {
	axes := [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}
	for _, d := range axes {
		n := b.count(column, row, player, d[0], d[1]) + b.count(column, row, player, -d[0], -d[1])
		if n >= ToWin-1 {
			return true
		}
	}
	return false
}

// count walks from (column, row) in one direction, excluding the start
// cell, and stops at the first cell that is off the board or not player's.
func (b *Board) count(column, row int, player CellState, dc, dr int) int {
	n := 0
	c, r := column+dc, row+dr
	for c >= 0 && c < Columns && r >= 0 && r < Rows && b.cells[r][c] == player {
		n++
		c += dc
		r += dr
	}
	return n
}

// Full reports whether no column can take another disc.
func (b *Board) Full() bool {
	for _, cell := range b.cells[0] {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (b *Board) Cell(row, column int) CellState {
	return b.cells[row][column]
}

// String renders the board one row per line using '.', '1' and '2'.
func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		for _, cell := range row {
			switch cell {
			case Player1:
				sb.WriteByte('1')
			case Player2:
				sb.WriteByte('2')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
