package core

import (
	"encoding/json"
	"fmt"

	"chesslive/internal/server/engine"
)

// Request types

type CreateGameRequest struct {
	IsAIGame bool `json:"isAIGame"`
}

// Response types

// GameSummary is the list-view projection of a session.
type GameSummary struct {
	ID         string `json:"id"`
	FEN        string `json:"fen"`
	Turn       string `json:"turn"` // "w" or "b"
	IsGameOver bool   `json:"isGameOver"`
	CreatedAt  string `json:"createdAt"`
}

// GameView is the full session state sent to clients.
type GameView struct {
	ID         string              `json:"id"`
	FEN        string              `json:"fen"`
	PGN        string              `json:"pgn"`
	Turn       string              `json:"turn"`
	Status     string              `json:"status,omitempty"` // "check", "checkmate", ...
	IsGameOver bool                `json:"isGameOver"`
	IsAIGame   bool                `json:"isAIGame"`
	History    []engine.MoveDetail `json:"history"`
	CreatedAt  string              `json:"createdAt"`
}

type GameListResponse struct {
	Success bool          `json:"success"`
	Games   []GameSummary `json:"games"`
}

type GameResponse struct {
	Success bool     `json:"success"`
	Game    GameView `json:"game"`
}

// AIMoveResponse is the result of a synchronous automated move.
type AIMoveResponse struct {
	Success    bool                `json:"success"`
	Move       *engine.MoveDetail  `json:"move"`
	FEN        string              `json:"fen"`
	PGN        string              `json:"pgn"`
	Turn       string              `json:"turn"`
	IsGameOver bool                `json:"isGameOver"`
	History    []engine.MoveDetail `json:"history"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// MoveArg is the move field of a make_move event. Clients send either a bare
// notation string or an object with from/to and an optional promotion piece.
type MoveArg struct {
	Notation  string
	From      string
	To        string
	Promotion string
}

func (m *MoveArg) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Notation = s
		return nil
	}
	var obj struct {
		From      string `json:"from"`
		To        string `json:"to"`
		Promotion string `json:"promotion"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("move must be a string or {from, to, promotion} object")
	}
	m.From = obj.From
	m.To = obj.To
	m.Promotion = obj.Promotion
	return nil
}

func (m MoveArg) MarshalJSON() ([]byte, error) {
	if m.Notation != "" {
		return json.Marshal(m.Notation)
	}
	return json.Marshal(struct {
		From      string `json:"from"`
		To        string `json:"to"`
		Promotion string `json:"promotion,omitempty"`
	}{m.From, m.To, m.Promotion})
}

// IsObject reports whether the move was sent in from/to form.
func (m MoveArg) IsObject() bool {
	return m.Notation == ""
}
