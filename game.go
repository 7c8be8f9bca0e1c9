package main

import (
	"fmt"
	"log"
	"time"
)

type Game struct {
	settings       GameSettings
	rules          Rules
	state          GameState
	history        MoveHistory
	blackPlayer    IPlayer
	whitePlayer    IPlayer
	turnStart      time.Time
	hintsPublished bool
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.turnStart = time.Now()
	g.hintsPublished = false
	g.logMatchup()
}

func (g *Game) Start() {
	if g.state.Status != StatusNotStarted {
		return
	}
	g.state.Status = StatusRunning
	g.turnStart = time.Now()
	// A pre-seeded position may already leave the starting side without a
	// legal move; resolve that before the first Tick.
	if !g.rules.HasAnyMove(g.state.Board, g.state.ToMove) {
		opponent := otherPlayer(g.state.ToMove)
		if g.rules.HasAnyMove(g.state.Board, opponent) {
			g.recordPass(g.state.ToMove)
			g.state.ToMove = opponent
		} else {
			g.finish()
		}
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) Scores() (int, int) {
	return g.state.Board.CountCell(CellBlack), g.state.Board.CountCell(CellWhite)
}

// TryApplyMove validates the move for the side to move, applies it with
// all flips, then resolves whose turn comes next (including passes and
// game end). Returns false with a reason when the move is illegal; the
// board is untouched in that case.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	ok, reason := g.rules.IsLegalDefault(g.state, move)
	if !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	g.state.HasLastPass = false
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	cell := CellFromPlayer(g.state.ToMove)
	flips := g.rules.FindFlips(g.state.Board, move, cell)
	g.state.Board.Set(move.X, move.Y, cell)
	for _, flipped := range flips {
		g.state.Board.Set(flipped.X, flipped.Y, cell)
	}
	g.state.LastMove = move
	g.state.HasLastMove = true
	g.history.Push(HistoryEntry{
		Move:             move,
		Player:           g.state.ToMove,
		FlippedPositions: flips,
		FlippedCount:     len(flips),
		ElapsedMs:        elapsedMs,
		IsAi:             isAiMove,
	})
	g.logMovePlayed(move, elapsedMs, isAiMove, len(flips))
	g.hintsPublished = false
	g.resolveTurn()
	g.turnStart = time.Now()
	return true, ""
}

// resolveTurn decides who moves next after an applied move. The opponent
// takes the turn when it can; otherwise it passes and the mover keeps the
// turn; when neither side can move the game ends by disc count. A pass
// never changes the board, so at most one pass separates two moves and the
// check stays flat instead of recursing.
func (g *Game) resolveTurn() {
	mover := g.state.ToMove
	opponent := otherPlayer(mover)
	if g.rules.HasAnyMove(g.state.Board, opponent) {
		g.state.ToMove = opponent
		return
	}
	if g.rules.HasAnyMove(g.state.Board, mover) {
		g.recordPass(opponent)
		return
	}
	g.finish()
}

func (g *Game) recordPass(passer PlayerColor) {
	g.state.HasLastPass = true
	g.state.LastPassBy = passer
	g.state.LastMessage = fmt.Sprintf("%s has no legal moves and passes", playerName(passer))
	g.history.Push(HistoryEntry{Move: Move{X: -1, Y: -1}, Player: passer, Pass: true})
	g.logPass(passer)
}

func (g *Game) finish() {
	black, white := g.Scores()
	g.state.Status = g.rules.Winner(g.state.Board)
	g.state.LastMessage = fmt.Sprintf("Game over: Black %d, White %d", black, white)
	g.logResult(black, white)
}

// Tick advances the game by at most one move: it applies a pending human
// move or lets the AI side play. Hints for the human side are published at
// most once per position.
func (g *Game) Tick(hintsEnabled bool, hintsSink func(hintsPayload)) bool {
	if g.state.Status != StatusRunning {
		g.clearHints(hintsSink)
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if player.IsHuman() {
		if hintsEnabled && hintsSink != nil {
			g.publishHints(hintsSink)
		} else {
			g.clearHints(hintsSink)
		}
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingMove() {
			move := human.TakePendingMove()
			applied, _ := g.TryApplyMove(move)
			return applied
		}
		return false
	}
	g.clearHints(hintsSink)
	if delay := time.Duration(GetConfig().AiMoveDelayMs) * time.Millisecond; delay > 0 && time.Since(g.turnStart) < delay {
		return false
	}
	move, ok := player.ChooseMove(g.state.Clone(), g.rules)
	if !ok {
		// resolveTurn never hands the turn to a side without moves, so
		// this only trips on a position mutated behind the game's back.
		return false
	}
	applied, _ := g.TryApplyMove(move)
	return applied
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) ValidMovesForCurrent() []Move {
	return g.rules.ValidMoves(g.state.Board, g.state.ToMove)
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerBlack {
		return g.blackPlayer
	}
	return g.whitePlayer
}

func (g *Game) createPlayers() {
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer()
	}
	if g.settings.WhiteType == PlayerHuman {
		g.whitePlayer = NewHumanPlayer()
	} else {
		g.whitePlayer = NewAIPlayer()
	}
}

func (g *Game) publishHints(hintsSink func(hintsPayload)) {
	if g.hintsPublished {
		return
	}
	g.hintsPublished = true
	moves := g.ValidMovesForCurrent()
	positions := make([]hintCell, 0, len(moves))
	cell := CellFromPlayer(g.state.ToMove)
	for _, move := range moves {
		positions = append(positions, hintCell{
			X:     move.X,
			Y:     move.Y,
			Flips: g.rules.CountFlips(g.state.Board, move, cell),
		})
	}
	hintsSink(hintsPayload{
		Positions:  positions,
		NextPlayer: playerToInt(g.state.ToMove),
		Active:     true,
	})
}

func (g *Game) clearHints(hintsSink func(hintsPayload)) {
	if !g.hintsPublished {
		return
	}
	g.hintsPublished = false
	if hintsSink != nil {
		hintsSink(hintsPayload{Active: false})
	}
}

func (g *Game) logMatchup() {
	label := func(t PlayerType) string {
		if t == PlayerAI {
			return "AI"
		}
		return "Human"
	}
	if GetConfig().LogMoves {
		log.Printf("[game] Black (%s) vs White (%s) on %dx%d", label(g.settings.BlackType), label(g.settings.WhiteType), g.settings.BoardSize, g.settings.BoardSize)
	}
}

func (g *Game) logMovePlayed(move Move, elapsedMs float64, isAiMove bool, flipped int) {
	if !GetConfig().LogMoves {
		return
	}
	who := "human"
	if isAiMove {
		who = "ai"
	}
	log.Printf("[game] %s %s plays (%d,%d) flipping %d after %.0fms", playerName(g.state.ToMove), who, move.X, move.Y, flipped, elapsedMs)
}

func (g *Game) logPass(passer PlayerColor) {
	if GetConfig().LogMoves {
		log.Printf("[game] %s passes", playerName(passer))
	}
}

func (g *Game) logResult(black, white int) {
	if GetConfig().LogMoves {
		log.Printf("[game] game over: Black %d, White %d", black, white)
	}
}
