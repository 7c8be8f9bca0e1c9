package main

type AIPlayer struct{}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove picks the legal move that flips the most opponent discs.
// Candidates are evaluated in the row-major order ValidMoves produces and
// the best-so-far pointer only advances on a strict improvement, so ties
// keep the earliest candidate. Returns false when the side has no legal
// move (a pass).
func (a *AIPlayer) ChooseMove(state GameState, rules Rules) (Move, bool) {
	moves := rules.ValidMoves(state.Board, state.ToMove)
	if len(moves) == 0 {
		return Move{}, false
	}
	cell := CellFromPlayer(state.ToMove)
	best := moves[0]
	bestFlips := rules.CountFlips(state.Board, best, cell)
	for _, move := range moves[1:] {
		flips := rules.CountFlips(state.Board, move, cell)
		if flips > bestFlips {
			best = move
			bestFlips = flips
		}
	}
	return best, true
}
