package main

import "sync"

// GameController serializes access to one Game so the HTTP handlers, the
// Tick loop and the websocket hubs never race on board state. Each
// controller owns its own game; nothing is process-global.
type GameController struct {
	mu             sync.Mutex
	game           Game
	hintsEnabled   func() bool
	hintsPublisher func(hintsPayload)
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{game: NewGame(settings)}
}

func (gc *GameController) SetHintsPublisher(enabled func() bool, publisher func(hintsPayload)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.hintsEnabled = enabled
	gc.hintsPublisher = publisher
}

func (gc *GameController) ApplyHumanMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	return gc.game.TryApplyMove(move)
}

// SubmitHumanMove queues a move for the human side; the next Tick
// validates and applies it. Unlike ApplyHumanMove there is no immediate
// legality answer, which suits the websocket input path.
func (gc *GameController) SubmitHumanMove(move Move) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(move)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	hintsEnabled := false
	if gc.hintsEnabled != nil {
		hintsEnabled = gc.hintsEnabled()
	}
	return gc.game.Tick(hintsEnabled, gc.hintsPublisher)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := history.All()
	return entries[len(entries)-1], true
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) Scores() (int, int) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Scores()
}

func (gc *GameController) ValidMoves() []Move {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ValidMovesForCurrent()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
}

func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	gc.game.settings = update
	gc.game.createPlayers()
}
