package api

// Wire types mirroring the server's JSON responses.

type CreateGameRequest struct {
	IsAIGame bool `json:"isAIGame"`
}

type MoveDetail struct {
	Color     string `json:"color"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	SAN       string `json:"san"`
}

type GameSummary struct {
	ID         string `json:"id"`
	FEN        string `json:"fen"`
	Turn       string `json:"turn"`
	IsGameOver bool   `json:"isGameOver"`
	CreatedAt  string `json:"createdAt"`
}

type GameView struct {
	ID         string       `json:"id"`
	FEN        string       `json:"fen"`
	PGN        string       `json:"pgn"`
	Turn       string       `json:"turn"`
	Status     string       `json:"status,omitempty"`
	IsGameOver bool         `json:"isGameOver"`
	IsAIGame   bool         `json:"isAIGame"`
	History    []MoveDetail `json:"history"`
	CreatedAt  string       `json:"createdAt"`
}

type GameListResponse struct {
	Success bool          `json:"success"`
	Games   []GameSummary `json:"games"`
}

type GameResponse struct {
	Success bool     `json:"success"`
	Game    GameView `json:"game"`
}

type AIMoveResponse struct {
	Success    bool         `json:"success"`
	Move       *MoveDetail  `json:"move"`
	FEN        string       `json:"fen"`
	PGN        string       `json:"pgn"`
	Turn       string       `json:"turn"`
	IsGameOver bool         `json:"isGameOver"`
	History    []MoveDetail `json:"history"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   int64  `json:"time"`
}
