package core

import "chesslive/internal/server/engine"

// Real-time event names. Client-to-server: join_game, make_move,
// restart_game. Server-to-client: the rest.
const (
	EventJoinGame      = "join_game"
	EventMakeMove      = "make_move"
	EventRestartGame   = "restart_game"
	EventGameState     = "game_state"
	EventMoveMade      = "move_made"
	EventGameRestarted = "game_restarted"
	EventError         = "error"
	EventAIThinking    = "ai_thinking"
	EventAIError       = "ai_error"
)

// Envelope carries only the event discriminator; payloads are decoded from
// the full message once the type is known.
type Envelope struct {
	Type string `json:"type"`
}

// Client-to-server payloads.

type JoinGamePayload struct {
	GameID string `json:"gameId" validate:"required,min=1,max=80"`
}

type MakeMovePayload struct {
	GameID string  `json:"gameId" validate:"required,min=1,max=80"`
	Move   MoveArg `json:"move"`
}

type RestartGamePayload struct {
	GameID string `json:"gameId" validate:"required,min=1,max=80"`
}

// Server-to-client payloads.

type GameStateEvent struct {
	Type       string              `json:"type"`
	GameID     string              `json:"gameId"`
	FEN        string              `json:"fen"`
	PGN        string              `json:"pgn"`
	Turn       string              `json:"turn"`
	Status     string              `json:"status,omitempty"`
	IsGameOver bool                `json:"isGameOver"`
	IsAIGame   bool                `json:"isAIGame"`
	History    []engine.MoveDetail `json:"history"`
}

type MoveMadeEvent struct {
	Type       string              `json:"type"`
	GameID     string              `json:"gameId"`
	Move       *engine.MoveDetail  `json:"move"`
	FEN        string              `json:"fen"`
	PGN        string              `json:"pgn"`
	Turn       string              `json:"turn"`
	Status     string              `json:"status,omitempty"`
	IsGameOver bool                `json:"isGameOver"`
	History    []engine.MoveDetail `json:"history"`
	IsAIMove   bool                `json:"isAIMove,omitempty"`
}

type GameRestartedEvent struct {
	Type       string              `json:"type"`
	GameID     string              `json:"gameId"`
	FEN        string              `json:"fen"`
	PGN        string              `json:"pgn"`
	Turn       string              `json:"turn"`
	IsGameOver bool                `json:"isGameOver"`
	History    []engine.MoveDetail `json:"history"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type AIThinkingEvent struct {
	Type     string `json:"type"`
	GameID   string `json:"gameId"`
	Thinking bool   `json:"thinking"`
}

type AIErrorEvent struct {
	Type   string `json:"type"`
	GameID string `json:"gameId"`
	Error  string `json:"error"`
}

// NewGameStateEvent projects a GameView into a game_state event.
func NewGameStateEvent(v GameView) GameStateEvent {
	return GameStateEvent{
		Type:       EventGameState,
		GameID:     v.ID,
		FEN:        v.FEN,
		PGN:        v.PGN,
		Turn:       v.Turn,
		Status:     v.Status,
		IsGameOver: v.IsGameOver,
		IsAIGame:   v.IsAIGame,
		History:    v.History,
	}
}

// NewMoveMadeEvent projects a GameView and the applied move into a move_made
// event.
func NewMoveMadeEvent(v GameView, move *engine.MoveDetail, aiMove bool) MoveMadeEvent {
	return MoveMadeEvent{
		Type:       EventMoveMade,
		GameID:     v.ID,
		Move:       move,
		FEN:        v.FEN,
		PGN:        v.PGN,
		Turn:       v.Turn,
		Status:     v.Status,
		IsGameOver: v.IsGameOver,
		History:    v.History,
		IsAIMove:   aiMove,
	}
}

// NewGameRestartedEvent projects a freshly reset GameView into a
// game_restarted event.
func NewGameRestartedEvent(v GameView) GameRestartedEvent {
	return GameRestartedEvent{
		Type:       EventGameRestarted,
		GameID:     v.ID,
		FEN:        v.FEN,
		PGN:        v.PGN,
		Turn:       v.Turn,
		IsGameOver: v.IsGameOver,
		History:    v.History,
	}
}
