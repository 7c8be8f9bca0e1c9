package main

import "fmt"

// The 8 directions a flip line can run in.
var flipDirections = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

// IsLegal reports whether player may place a disc at move. A placement is
// legal only on an empty in-bounds cell that flips at least one opponent
// disc; the reason string names the first failed condition.
func (r Rules) IsLegal(state GameState, move Move, player PlayerColor) (bool, string) {
	if !move.IsValid(r.settings.BoardSize) {
		return false, "out of bounds"
	}
	if !state.Board.IsEmpty(move.X, move.Y) {
		return false, "occupied"
	}
	if !r.hasFlip(state.Board, move, CellFromPlayer(player)) {
		return false, "no discs flipped"
	}
	return true, ""
}

func (r Rules) IsLegalDefault(state GameState, move Move) (bool, string) {
	return r.IsLegal(state, move, state.ToMove)
}

// FindFlips collects every opponent disc that placing playerCell at move
// would flip. Each direction is walked independently: the walk crosses
// consecutive opponent discs and qualifies only when it ends on an
// in-bounds disc of playerCell.
func (r Rules) FindFlips(board Board, move Move, playerCell Cell) []Move {
	oppCell := opponentCell(playerCell)
	flips := make([]Move, 0, 8)
	for i := 0; i < 8; i++ {
		dx := flipDirections[i][0]
		dy := flipDirections[i][1]
		x := move.X + dx
		y := move.Y + dy
		runStart := len(flips)
		for board.InBounds(x, y) && board.At(x, y) == oppCell {
			flips = append(flips, Move{X: x, Y: y})
			x += dx
			y += dy
		}
		if len(flips) == runStart {
			continue
		}
		if !board.InBounds(x, y) || board.At(x, y) != playerCell {
			flips = flips[:runStart]
		}
	}
	return flips
}

// CountFlips is the non-mutating flip count across all 8 directions. It is
// a pure scoring function: it does not check that the target cell is empty
// or in bounds, so a score of 0 does not by itself make a move illegal and
// a positive score does not make it legal.
func (r Rules) CountFlips(board Board, move Move, playerCell Cell) int {
	oppCell := opponentCell(playerCell)
	total := 0
	for i := 0; i < 8; i++ {
		dx := flipDirections[i][0]
		dy := flipDirections[i][1]
		x := move.X + dx
		y := move.Y + dy
		run := 0
		for board.InBounds(x, y) && board.At(x, y) == oppCell {
			run++
			x += dx
			y += dy
		}
		if run > 0 && board.InBounds(x, y) && board.At(x, y) == playerCell {
			total += run
		}
	}
	return total
}

func (r Rules) hasFlip(board Board, move Move, playerCell Cell) bool {
	oppCell := opponentCell(playerCell)
	for i := 0; i < 8; i++ {
		dx := flipDirections[i][0]
		dy := flipDirections[i][1]
		x := move.X + dx
		y := move.Y + dy
		run := 0
		for board.InBounds(x, y) && board.At(x, y) == oppCell {
			run++
			x += dx
			y += dy
		}
		if run > 0 && board.InBounds(x, y) && board.At(x, y) == playerCell {
			return true
		}
	}
	return false
}

// ValidMoves scans the board in row-major order and returns every legal
// placement for player. The scan order is the tie-break convention used by
// the greedy opponent, so it must stay row-major.
func (r Rules) ValidMoves(board Board, player PlayerColor) []Move {
	cell := CellFromPlayer(player)
	moves := []Move{}
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) != CellEmpty {
				continue
			}
			if r.hasFlip(board, Move{X: x, Y: y}, cell) {
				moves = append(moves, Move{X: x, Y: y})
			}
		}
	}
	return moves
}

func (r Rules) HasAnyMove(board Board, player PlayerColor) bool {
	cell := CellFromPlayer(player)
	size := board.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if board.At(x, y) != CellEmpty {
				continue
			}
			if r.hasFlip(board, Move{X: x, Y: y}, cell) {
				return true
			}
		}
	}
	return false
}

func (r Rules) IsGameOver(board Board) bool {
	return !r.HasAnyMove(board, PlayerBlack) && !r.HasAnyMove(board, PlayerWhite)
}

// Winner resolves a finished board by disc count.
func (r Rules) Winner(board Board) GameStatus {
	black := board.CountCell(CellBlack)
	white := board.CountCell(CellWhite)
	switch {
	case black > white:
		return StatusBlackWon
	case white > black:
		return StatusWhiteWon
	default:
		return StatusDraw
	}
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{size=%d}", r.settings.BoardSize)
}
