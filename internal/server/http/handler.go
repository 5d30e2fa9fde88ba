// Package http is the stateless resource layer: listing, creating and
// inspecting sessions, plus the synchronous automated-move endpoint. The
// real-time protocol handler is mounted here as well, on /ws.
package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"chesslive/internal/server/advisor"
	"chesslive/internal/server/config"
	"chesslive/internal/server/core"
	"chesslive/internal/server/engine"
	"chesslive/internal/server/store"
	"chesslive/internal/server/ws"
)

const rateLimitRate = 10 // req/sec

// Suggester produces one legal candidate move for a position snapshot.
type Suggester interface {
	SuggestMove(ctx context.Context, g *engine.Game) (*engine.CandidateMove, error)
}

// Handler handles HTTP requests against the session store.
type Handler struct {
	store     *store.Store
	suggester Suggester
	log       *zap.Logger
}

func NewHandler(st *store.Store, suggester Suggester, log *zap.Logger) *Handler {
	return &Handler{store: st, suggester: suggester, log: log}
}

func NewFiberApp(st *store.Store, suggester Suggester, wsh *ws.Handler, cfg *config.Config, devMode bool, log *zap.Logger) *fiber.App {
	h := NewHandler(st, suggester, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	// Websocket upgrade for the session protocol
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(wsh.HandleConn))

	// Game routes with standard rate limiting
	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	games := app.Group("/games", limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error: "rate limit exceeded",
				Code:  core.ErrRateLimitExceeded,
			})
		},
	}), validationMiddleware)

	games.Get("/", h.ListGames)
	games.Post("/", h.CreateGame)
	games.Get("/:gameId", h.GetGame)
	games.Post("/:gameId/ai-move", h.AIMove)

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(core.ErrorResponse{
		Error: err.Error(),
		Code:  core.ErrInternalError,
	})
}

// Health check endpoint
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// ListGames returns a summary of every session, oldest first.
func (h *Handler) ListGames(c *fiber.Ctx) error {
	sessions := h.store.List()
	games := make([]core.GameSummary, 0, len(sessions))
	for _, s := range sessions {
		games = append(games, s.Summary())
	}
	return c.JSON(core.GameListResponse{Success: true, Games: games})
}

// CreateGame allocates a new session.
func (h *Handler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[*core.CreateGameRequest](c)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
	}

	sess := h.store.Create(req.IsAIGame)
	h.log.Info("game created",
		zap.String("gameId", sess.ID), zap.Bool("isAIGame", req.IsAIGame))

	return c.Status(fiber.StatusCreated).JSON(core.GameResponse{
		Success: true,
		Game:    sess.View(),
	})
}

// GetGame returns the full session state including move history.
func (h *Handler) GetGame(c *fiber.Ctx) error {
	sess, ok := h.store.Get(c.Params("gameId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "Game not found",
			Code:  core.ErrGameNotFound,
		})
	}
	return c.JSON(core.GameResponse{Success: true, Game: sess.View()})
}

// AIMove requests and applies one automated move synchronously.
func (h *Handler) AIMove(c *fiber.Ctx) error {
	sess, ok := h.store.Get(c.Params("gameId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "Game not found",
			Code:  core.ErrGameNotFound,
		})
	}
	if !sess.AIGame {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error: "This is not an AI game",
			Code:  core.ErrNotAIGame,
		})
	}

	cand, err := h.suggester.SuggestMove(c.Context(), sess.CloneGame())
	if err != nil {
		if errors.Is(err, advisor.ErrNoLegalMoves) {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error: "No valid AI move available",
				Code:  core.ErrNoMoveAvailable,
			})
		}
		h.log.Warn("synchronous AI move failed",
			zap.String("gameId", sess.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error:   "Failed to make AI move",
			Code:    core.ErrAIMoveFailed,
			Message: err.Error(),
		})
	}

	detail, view, err := sess.ApplyMove(*cand)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "AI move is invalid",
			Code:    core.ErrInvalidMove,
			Message: err.Error(),
		})
	}

	h.log.Info("AI move made",
		zap.String("gameId", sess.ID), zap.String("san", detail.SAN))

	return c.JSON(core.AIMoveResponse{
		Success:    true,
		Move:       detail,
		FEN:        view.FEN,
		PGN:        view.PGN,
		Turn:       view.Turn,
		IsGameOver: view.IsGameOver,
		History:    view.History,
	})
}
