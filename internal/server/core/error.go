package core

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrNotAIGame         = "NOT_AI_GAME"
	ErrNoMoveAvailable   = "NO_MOVE_AVAILABLE"
	ErrAIMoveFailed      = "AI_MOVE_FAILED"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
