package main

import "testing"

func TestGreedyPicksMoveWithMostFlips(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Board.Reset(8)
	state.Status = StatusRunning
	state.ToMove = PlayerBlack

	// (3,0) closes a two-disc white run, (2,2) only a single one.
	state.Board.Set(0, 0, CellBlack)
	state.Board.Set(1, 0, CellWhite)
	state.Board.Set(2, 0, CellWhite)
	state.Board.Set(0, 2, CellBlack)
	state.Board.Set(1, 2, CellWhite)

	ai := NewAIPlayer()
	move, ok := ai.ChooseMove(state, rules)
	if !ok {
		t.Fatalf("expected the greedy player to find a move")
	}
	if !move.Equals(Move{X: 3, Y: 0}) {
		t.Fatalf("expected the two-flip move (3,0), got (%d,%d)", move.X, move.Y)
	}
}

func TestGreedyTieBreakKeepsScanOrder(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Board.Reset(8)
	state.Status = StatusRunning
	state.ToMove = PlayerWhite

	// Two candidates score 3 flips: (3,2) down the column and (6,5)
	// along the row. (3,2) comes first in row-major order and must win.
	state.Board.Set(3, 3, CellBlack)
	state.Board.Set(3, 4, CellBlack)
	state.Board.Set(3, 5, CellBlack)
	state.Board.Set(3, 6, CellWhite)
	state.Board.Set(4, 5, CellBlack)
	state.Board.Set(5, 5, CellBlack)
	state.Board.Set(2, 5, CellWhite)

	if flips := rules.CountFlips(state.Board, Move{X: 3, Y: 2}, CellWhite); flips != 3 {
		t.Fatalf("expected (3,2) to score 3 flips, got %d", flips)
	}
	if flips := rules.CountFlips(state.Board, Move{X: 6, Y: 5}, CellWhite); flips != 3 {
		t.Fatalf("expected (6,5) to score 3 flips, got %d", flips)
	}

	ai := NewAIPlayer()
	move, ok := ai.ChooseMove(state, rules)
	if !ok {
		t.Fatalf("expected the greedy player to find a move")
	}
	if !move.Equals(Move{X: 3, Y: 2}) {
		t.Fatalf("expected the row-major-earliest tied move (3,2), got (%d,%d)", move.X, move.Y)
	}
}

func TestGreedyOpeningTieKeepsFirstCandidate(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning

	// All four opening moves flip exactly one disc, so the first one in
	// scan order is kept.
	ai := NewAIPlayer()
	move, ok := ai.ChooseMove(state, rules)
	if !ok {
		t.Fatalf("expected an opening move")
	}
	if !move.Equals(Move{X: 3, Y: 2}) {
		t.Fatalf("expected (3,2), got (%d,%d)", move.X, move.Y)
	}
}

func TestGreedyReportsNoMoveAsPass(t *testing.T) {
	settings := DefaultGameSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Board.Reset(8)
	state.Status = StatusRunning
	state.ToMove = PlayerWhite
	state.Board.Set(0, 0, CellBlack)

	ai := NewAIPlayer()
	if _, ok := ai.ChooseMove(state, rules); ok {
		t.Fatalf("expected no move for a side without legal placements")
	}
}
