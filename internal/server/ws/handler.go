package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"chesslive/internal/server/core"
	"chesslive/internal/server/engine"
	"chesslive/internal/server/store"
)

var validate = validator.New()

// MoveSuggester produces one legal candidate move for a position snapshot.
type MoveSuggester interface {
	SuggestMove(ctx context.Context, g *engine.Game) (*engine.CandidateMove, error)
}

// Handler drives the per-connection event state machine: join_game,
// make_move, restart_game, disconnect.
type Handler struct {
	store         *store.Store
	suggester     MoveSuggester
	hub           *Hub
	thinkingDelay time.Duration
	log           *zap.Logger
}

func NewHandler(st *store.Store, suggester MoveSuggester, hub *Hub, thinkingDelay time.Duration, log *zap.Logger) *Handler {
	return &Handler{
		store:         st,
		suggester:     suggester,
		hub:           hub,
		thinkingDelay: thinkingDelay,
		log:           log,
	}
}

// HandleConn owns one websocket connection for its lifetime: it registers
// the connection with the hub, pumps outbound messages, and dispatches
// inbound events until the peer goes away.
func (h *Handler) HandleConn(c *websocket.Conn) {
	connID := uuid.NewString()
	out := h.hub.Register(connID)
	h.log.Info("client connected", zap.String("connId", connID))

	go func() {
		for data := range out {
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	defer func() {
		h.store.Detach(connID)
		h.hub.Unregister(connID)
		h.log.Info("client disconnected", zap.String("connId", connID))
	}()

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			return
		}
		h.Dispatch(connID, msg)
	}
}

// Dispatch routes one raw inbound message to its event handler.
func (h *Handler) Dispatch(connID string, raw []byte) {
	var env core.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.sendError(connID, "invalid message", core.ErrInvalidRequest)
		return
	}

	switch env.Type {
	case core.EventJoinGame:
		var p core.JoinGamePayload
		if !h.decode(connID, raw, &p) {
			return
		}
		h.handleJoin(connID, p)
	case core.EventMakeMove:
		var p core.MakeMovePayload
		if !h.decode(connID, raw, &p) {
			return
		}
		h.handleMove(connID, p)
	case core.EventRestartGame:
		var p core.RestartGamePayload
		if !h.decode(connID, raw, &p) {
			return
		}
		h.handleRestart(connID, p)
	default:
		h.sendError(connID, "unknown event type", core.ErrInvalidRequest)
	}
}

func (h *Handler) decode(connID string, raw []byte, payload any) bool {
	if err := json.Unmarshal(raw, payload); err != nil {
		h.sendError(connID, "invalid payload", core.ErrInvalidRequest)
		return false
	}
	if err := validate.Struct(payload); err != nil {
		h.sendError(connID, "invalid payload: "+err.Error(), core.ErrInvalidRequest)
		return false
	}
	return true
}

// handleJoin attaches the connection to the session, creating a fresh one
// when the identifier is unknown, and unicasts the full state to the joiner.
func (h *Handler) handleJoin(connID string, p core.JoinGamePayload) {
	sess, ok := h.store.Get(p.GameID)
	if !ok {
		sess = h.store.Create(false)
		h.log.Info("created game on join",
			zap.String("requestedId", p.GameID), zap.String("gameId", sess.ID))
	}

	h.store.Attach(sess.ID, connID)
	h.hub.Send(connID, core.NewGameStateEvent(sess.View()))
	h.log.Info("client joined game",
		zap.String("connId", connID), zap.String("gameId", sess.ID))
}

// handleMove applies a human move through the rules-engine gate. Success is
// broadcast to every participant; rejection goes back to the sender only.
func (h *Handler) handleMove(connID string, p core.MakeMovePayload) {
	sess, ok := h.store.Get(p.GameID)
	if !ok {
		h.sendError(connID, "Game not found", core.ErrGameNotFound)
		return
	}
	if !sess.HasParticipant(connID) {
		h.sendError(connID, "You are not part of this game", core.ErrInvalidRequest)
		return
	}

	cand, err := h.resolveCandidate(sess, p.Move)
	if err != nil {
		h.sendError(connID, "Invalid move", core.ErrInvalidMove)
		return
	}

	detail, view, err := sess.ApplyMove(*cand)
	if err != nil {
		h.sendError(connID, "Invalid move", core.ErrInvalidMove)
		return
	}

	h.log.Info("move made",
		zap.String("gameId", sess.ID), zap.String("san", detail.SAN))
	h.hub.Broadcast(sess.Participants(), core.NewMoveMadeEvent(view, detail, false))

	h.maybeScheduleAIMove(sess, view)
}

// handleRestart resets the position, cancels any pending automated move and
// broadcasts the empty-history state.
func (h *Handler) handleRestart(connID string, p core.RestartGamePayload) {
	sess, ok := h.store.Get(p.GameID)
	if !ok {
		h.sendError(connID, "Game not found", core.ErrGameNotFound)
		return
	}

	sess.CancelAI()
	view := sess.Reset()

	h.log.Info("game restarted", zap.String("gameId", sess.ID))
	h.hub.Broadcast(sess.Participants(), core.NewGameRestartedEvent(view))
}

// resolveCandidate turns the wire move into a candidate: from/to objects pass
// through, notation strings are interpreted against the current position.
func (h *Handler) resolveCandidate(sess *store.Session, m core.MoveArg) (*engine.CandidateMove, error) {
	if m.IsObject() {
		return &engine.CandidateMove{From: m.From, To: m.To, Promotion: m.Promotion}, nil
	}
	return sess.ParseMove(m.Notation)
}

// maybeScheduleAIMove arms the automated-opponent timer after a successful
// human move. The automated side is black; the timer is cancellable so a
// restart invalidates the pending move, and a stale suggestion that fires
// anyway is rejected by the legality gate.
func (h *Handler) maybeScheduleAIMove(sess *store.Session, view core.GameView) {
	if !sess.AIGame || view.IsGameOver || view.Turn != engine.Black {
		return
	}
	sess.ScheduleAI(h.thinkingDelay, func() {
		h.runAIMove(sess)
	})
}

func (h *Handler) runAIMove(sess *store.Session) {
	h.log.Info("AI thinking", zap.String("gameId", sess.ID))
	h.hub.Broadcast(sess.Participants(), core.AIThinkingEvent{
		Type: core.EventAIThinking, GameID: sess.ID, Thinking: true,
	})

	cand, err := h.suggester.SuggestMove(context.Background(), sess.CloneGame())
	if err == nil {
		var detail *engine.MoveDetail
		var view core.GameView
		detail, view, err = sess.ApplyMove(*cand)
		if err == nil {
			h.log.Info("AI move made",
				zap.String("gameId", sess.ID), zap.String("san", detail.SAN))
			h.hub.Broadcast(sess.Participants(), core.NewMoveMadeEvent(view, detail, true))
			h.hub.Broadcast(sess.Participants(), core.AIThinkingEvent{
				Type: core.EventAIThinking, GameID: sess.ID, Thinking: false,
			})
			return
		}
	}

	// Failed attempts leave the position untouched.
	h.log.Warn("AI move failed", zap.String("gameId", sess.ID), zap.Error(err))
	h.hub.Broadcast(sess.Participants(), core.AIThinkingEvent{
		Type: core.EventAIThinking, GameID: sess.ID, Thinking: false,
	})
	h.hub.Broadcast(sess.Participants(), core.AIErrorEvent{
		Type: core.EventAIError, GameID: sess.ID, Error: err.Error(),
	})
}

func (h *Handler) sendError(connID, message, code string) {
	h.hub.Send(connID, core.ErrorEvent{Type: core.EventError, Message: message, Code: code})
}
