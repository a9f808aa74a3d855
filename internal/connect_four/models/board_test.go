package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropDiscFillsFromBottom(t *testing.T) {
	for column := 0; column < Columns; column++ {
		var b Board
		for want := Rows - 1; want >= 0; want-- {
			player := PlayerCell(want%2 + 1)
			row, err := b.DropDisc(column, player)
			require.NoError(t, err)
			assert.Equal(t, want, row, "column %d", column)
			assert.Equal(t, player, b.Cell(row, column))
		}
	}
}

func TestDropDiscFullColumnLeavesBoardUnchanged(t *testing.T) {
	var b Board
	for i := 0; i < Rows; i++ {
		_, err := b.DropDisc(2, Player1)
		require.NoError(t, err)
	}
	before := b

	row, err := b.DropDisc(2, Player2)
	require.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, -1, row)
	assert.Equal(t, before, b)
}

func TestDropDiscOutOfRange(t *testing.T) {
	var b Board
	for _, column := range []int{-1, Columns, 10} {
		_, err := b.DropDisc(column, Player1)
		require.ErrorIs(t, err, ErrColumnOutOfRange)
	}
	assert.Equal(t, Board{}, b)
}

func TestCheckWinHorizontalOnlyOnFourth(t *testing.T) {
	var b Board
	for column := 0; column < 3; column++ {
		row, err := b.DropDisc(column, Player1)
		require.NoError(t, err)
		assert.False(t, b.CheckWin(column, row, Player1), "column %d", column)
	}
	row, err := b.DropDisc(3, Player1)
	require.NoError(t, err)
	assert.Equal(t, Rows-1, row)
	assert.True(t, b.CheckWin(3, row, Player1))
}

func TestCheckWinFillingGap(t *testing.T) {
	var b Board
	for _, column := range []int{0, 1, 3} {
		_, err := b.DropDisc(column, Player2)
		require.NoError(t, err)
	}
	row, err := b.DropDisc(2, Player2)
	require.NoError(t, err)
	assert.True(t, b.CheckWin(2, row, Player2))
}

func TestCheckWinVertical(t *testing.T) {
	var b Board
	for i := 0; i < 3; i++ {
		row, err := b.DropDisc(4, Player2)
		require.NoError(t, err)
		assert.False(t, b.CheckWin(4, row, Player2))
	}
	row, err := b.DropDisc(4, Player2)
	require.NoError(t, err)
	assert.True(t, b.CheckWin(4, row, Player2))
}

func TestCheckWinDiagonals(t *testing.T) {
	// Rising to the right: (col 0,row 5) (1,4) (2,3) (3,2).
	rising := []string{
		".......",
		".......",
		"...1...",
		"..12...",
		".122...",
		"1222...",
	}
	b := boardFrom(t, rising)
	assert.True(t, b.CheckWin(3, 2, Player1))
	assert.True(t, b.CheckWin(0, 5, Player1))

	// Falling to the right: (3,2) (4,3) (5,4) (6,5).
	falling := []string{
		".......",
		".......",
		"...2...",
		"...12..",
		"...112.",
		"...1112",
	}
	b = boardFrom(t, falling)
	assert.True(t, b.CheckWin(3, 2, Player2))
	assert.True(t, b.CheckWin(6, 5, Player2))
}

func TestCheckWinThreeIsNotEnough(t *testing.T) {
	rows := []string{
		".......",
		".......",
		".......",
		"..1....",
		".12.2..",
		"1221211",
	}
	b := boardFrom(t, rows)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if cell := b.Cell(r, c); cell != Empty {
				assert.False(t, b.CheckWin(c, r, cell), "row %d column %d", r, c)
			}
		}
	}
}

func TestCheckWinIgnoresOpponentDiscs(t *testing.T) {
	rows := []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"1121111",
	}
	b := boardFrom(t, rows)
	assert.False(t, b.CheckWin(1, 5, Player1))
	assert.True(t, b.CheckWin(5, 5, Player1))
}

func TestFull(t *testing.T) {
	var b Board
	assert.False(t, b.Full())
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			_, err := b.DropDisc(c, Player1)
			require.NoError(t, err)
		}
	}
	assert.True(t, b.Full())
}

func TestBoardString(t *testing.T) {
	var b Board
	_, _ = b.DropDisc(0, Player1)
	_, _ = b.DropDisc(6, Player2)
	assert.Equal(t, ".......\n.......\n.......\n.......\n.......\n1.....2\n", b.String())
}

// boardFrom builds a board from top-to-bottom rows of '.', '1' and '2',
// dropping discs bottom-up so the gravity invariant holds.
func boardFrom(t *testing.T, rows []string) Board {
	t.Helper()
	require.Len(t, rows, Rows)
	var b Board
	for r := Rows - 1; r >= 0; r-- {
		require.Len(t, rows[r], Columns)
		for c, ch := range rows[r] {
			var cell CellState
			switch ch {
			case '1':
				cell = Player1
			case '2':
				cell = Player2
			default:
				continue
			}
			row, err := b.DropDisc(c, cell)
			require.NoError(t, err)
			require.Equal(t, r, row, "floating disc at row %d column %d", r, c)
		}
	}
	return b
}
