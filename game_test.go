package main

import (
	"strings"
	"testing"
)

func quietConfig(t *testing.T) {
	t.Helper()
	prev := GetConfig()
	cfg := prev
	cfg.LogMoves = false
	cfg.AiMoveDelayMs = 0
	cfg.PersistSettings = false
	configStore.Update(cfg)
	t.Cleanup(func() { configStore.Update(prev) })
}

func TestOpeningMoveFlipsDiagonalDisc(t *testing.T) {
	quietConfig(t)
	g := NewGame(DefaultGameSettings())
	g.Start()

	// Black plays row 2, column 3: the white disc at (3,3) flips.
	applied, reason := g.TryApplyMove(Move{X: 3, Y: 2})
	if !applied {
		t.Fatalf("expected opening move to apply, got reason: %s", reason)
	}
	if g.state.Board.At(3, 3) != CellBlack {
		t.Fatalf("expected the flanked white disc at (3,3) to flip to black")
	}
	black, white := g.Scores()
	if black != 4 || white != 1 {
		t.Fatalf("expected Black=4 White=1 after the opening move, got Black=%d White=%d", black, white)
	}
	if g.state.ToMove != PlayerWhite {
		t.Fatalf("expected the turn to pass to White")
	}
	if g.state.Status != StatusRunning {
		t.Fatalf("expected the game to keep running")
	}
}

func TestDiscCountGrowsByOnePlusFlips(t *testing.T) {
	quietConfig(t)
	settings := DefaultGameSettings()
	rules := NewRules(settings)

	for _, move := range rules.ValidMoves(DefaultGameState(settings).Board, PlayerBlack) {
		g := NewGame(settings)
		g.Start()
		preFlips := g.rules.CountFlips(g.state.Board, move, CellBlack)
		preDiscs := 64 - g.state.Board.CountEmpty()
		preBlack, preWhite := g.Scores()

		if applied, reason := g.TryApplyMove(move); !applied {
			t.Fatalf("expected %+v to apply: %s", move, reason)
		}

		postDiscs := 64 - g.state.Board.CountEmpty()
		if postDiscs != preDiscs+1 {
			t.Fatalf("move %+v: expected total discs to grow by exactly 1, got %d -> %d", move, preDiscs, postDiscs)
		}
		black, white := g.Scores()
		if black != preBlack+1+preFlips {
			t.Fatalf("move %+v: expected black count %d, got %d", move, preBlack+1+preFlips, black)
		}
		if white != preWhite-preFlips {
			t.Fatalf("move %+v: expected white count %d, got %d", move, preWhite-preFlips, white)
		}
	}
}

func TestWhitePassReturnsControlToBlack(t *testing.T) {
	quietConfig(t)
	g := NewGame(DefaultGameSettings())
	g.state.Board.Reset(8)
	// Row 3 holds a black run capped by a white disc; black plays (4,3)
	// and flips it. The white disc left afterwards sits in a corner
	// pocket white cannot play from, while black can still flank it.
	g.state.Board.Set(0, 3, CellBlack)
	g.state.Board.Set(1, 3, CellBlack)
	g.state.Board.Set(2, 3, CellBlack)
	g.state.Board.Set(3, 3, CellWhite)
	g.state.Board.Set(6, 0, CellWhite)
	g.state.Board.Set(7, 0, CellBlack)
	g.Start()

	if g.state.ToMove != PlayerBlack || g.state.Status != StatusRunning {
		t.Fatalf("expected a running game with Black to move")
	}

	applied, reason := g.TryApplyMove(Move{X: 4, Y: 3})
	if !applied {
		t.Fatalf("expected black move to apply, got reason: %s", reason)
	}
	if !g.state.HasLastPass || g.state.LastPassBy != PlayerWhite {
		t.Fatalf("expected a recorded White pass, got HasLastPass=%v by=%v", g.state.HasLastPass, g.state.LastPassBy)
	}
	if g.state.ToMove != PlayerBlack {
		t.Fatalf("expected control to return to Black after the White pass")
	}
	if g.state.Status != StatusRunning {
		t.Fatalf("expected the game to keep running after a pass, got %v", g.state.Status)
	}
	if !strings.Contains(g.state.LastMessage, "passes") {
		t.Fatalf("expected a pass notice in the message, got %q", g.state.LastMessage)
	}
	entries := g.history.All()
	last := entries[len(entries)-1]
	if !last.Pass || last.Player != PlayerWhite {
		t.Fatalf("expected the last history entry to be a White pass, got %+v", last)
	}
}

func TestStartRecordsPassWhenStarterIsStuck(t *testing.T) {
	quietConfig(t)
	g := NewGame(DefaultGameSettings())
	g.state.Board.Reset(8)
	// Black cannot flank the corner white disc, but white can flank the
	// black disc diagonally from (2,2).
	g.state.Board.Set(0, 0, CellWhite)
	g.state.Board.Set(1, 1, CellBlack)
	g.Start()

	if !g.state.HasLastPass || g.state.LastPassBy != PlayerBlack {
		t.Fatalf("expected Black to pass at start, got HasLastPass=%v by=%v", g.state.HasLastPass, g.state.LastPassBy)
	}
	if g.state.ToMove != PlayerWhite {
		t.Fatalf("expected White to move after the Black pass")
	}
	if g.state.Status != StatusRunning {
		t.Fatalf("expected the game to keep running, got %v", g.state.Status)
	}
}

func TestFullBoardResolvesByDiscCount(t *testing.T) {
	quietConfig(t)
	g := NewGame(DefaultGameSettings())
	g.state.Board.Reset(8)
	// 33 black discs, 31 white, no empty cell: the game is over and
	// Black wins on count alone.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if y < 4 || (y == 4 && x == 0) {
				g.state.Board.Set(x, y, CellBlack)
			} else {
				g.state.Board.Set(x, y, CellWhite)
			}
		}
	}
	g.Start()

	if g.state.Status != StatusBlackWon {
		t.Fatalf("expected BlackWon on a 33-31 full board, got %v", g.state.Status)
	}
	black, white := g.Scores()
	if black != 33 || white != 31 {
		t.Fatalf("expected 33-31, got %d-%d", black, white)
	}
}

func TestFullBoardEqualCountsIsDraw(t *testing.T) {
	quietConfig(t)
	g := NewGame(DefaultGameSettings())
	g.state.Board.Reset(8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if y < 4 {
				g.state.Board.Set(x, y, CellBlack)
			} else {
				g.state.Board.Set(x, y, CellWhite)
			}
		}
	}
	g.Start()

	if g.state.Status != StatusDraw {
		t.Fatalf("expected a 32-32 full board to draw, got %v", g.state.Status)
	}
}

func TestStartResolvesDeadPosition(t *testing.T) {
	quietConfig(t)
	g := NewGame(DefaultGameSettings())
	g.state.Board.Reset(8)
	// A lone disc leaves neither side a legal move; the game ends
	// immediately even though the board is nearly empty.
	g.state.Board.Set(0, 0, CellBlack)

	if !g.rules.IsGameOver(g.state.Board) {
		t.Fatalf("expected neither side to have a legal move")
	}
	g.Start()

	if g.state.Status != StatusBlackWon {
		t.Fatalf("expected the dead position to resolve to BlackWon, got %v", g.state.Status)
	}
}

func TestTryApplyMoveRejectsIllegalTarget(t *testing.T) {
	quietConfig(t)
	g := NewGame(DefaultGameSettings())
	g.Start()

	before := boardToSlice(g.state.Board)
	applied, reason := g.TryApplyMove(Move{X: 0, Y: 0})
	if applied {
		t.Fatalf("expected a non-flipping target to be rejected")
	}
	if !strings.Contains(reason, "no discs flipped") {
		t.Fatalf("expected the no-flip reason, got %q", reason)
	}
	after := boardToSlice(g.state.Board)
	for y := range before {
		for x := range before[y] {
			if before[y][x] != after[y][x] {
				t.Fatalf("expected the board to stay untouched after a rejected move")
			}
		}
	}
	if g.history.Size() != 0 {
		t.Fatalf("expected no history entry for a rejected move")
	}
}
