package main

import "testing"

func TestInitialPositionCenterPattern(t *testing.T) {
	state := DefaultGameState(DefaultGameSettings())

	if state.Board.At(3, 3) != CellWhite || state.Board.At(4, 4) != CellWhite {
		t.Fatalf("expected white discs at (3,3) and (4,4)")
	}
	if state.Board.At(4, 3) != CellBlack || state.Board.At(3, 4) != CellBlack {
		t.Fatalf("expected black discs at (4,3) and (3,4)")
	}
	if black := state.Board.CountCell(CellBlack); black != 2 {
		t.Fatalf("expected 2 black discs, got %d", black)
	}
	if white := state.Board.CountCell(CellWhite); white != 2 {
		t.Fatalf("expected 2 white discs, got %d", white)
	}
	if empty := state.Board.CountEmpty(); empty != 60 {
		t.Fatalf("expected 60 empty cells, got %d", empty)
	}
	if state.ToMove != PlayerBlack {
		t.Fatalf("expected Black to move first")
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	board := NewBoard(8)
	board.Set(2, 2, CellBlack)

	clone := board.Clone()
	clone.Set(2, 2, CellWhite)
	clone.Set(5, 5, CellBlack)

	if board.At(2, 2) != CellBlack {
		t.Fatalf("expected original board to keep its black disc at (2,2)")
	}
	if board.At(5, 5) != CellEmpty {
		t.Fatalf("expected original board to stay empty at (5,5)")
	}
}

func TestGameStateCloneDetachesBoard(t *testing.T) {
	state := DefaultGameState(DefaultGameSettings())
	clone := state.Clone()
	clone.Board.Set(0, 0, CellBlack)

	if state.Board.At(0, 0) != CellEmpty {
		t.Fatalf("expected cloned state mutation to leave the original board untouched")
	}
}
