package store

import (
	"sync"
	"time"

	"chesslive/internal/server/core"
	"chesslive/internal/server/engine"
)

// Session is one game instance: a position, its participant set and, for AI
// games, the pending automated-move timer. All position access goes through
// methods holding the session mutex, so at most one move is applied to the
// position at a time even when an automated move races a human one.
type Session struct {
	ID        string
	CreatedAt time.Time
	AIGame    bool

	mu           sync.Mutex
	game         *engine.Game
	participants map[string]struct{}
	aiTimer      *time.Timer
}

func newSession(id string, aiGame bool) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    time.Now(),
		AIGame:       aiGame,
		game:         engine.NewGame(),
		participants: make(map[string]struct{}),
	}
}

// ApplyMove runs the candidate through the rules-engine gate and returns the
// applied move together with the resulting state, both computed atomically
// under the session lock.
func (s *Session) ApplyMove(c engine.CandidateMove) (*engine.MoveDetail, core.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	detail, err := s.game.ApplyMove(c)
	if err != nil {
		return nil, core.GameView{}, err
	}
	return detail, s.viewLocked(), nil
}

// ParseMove interprets move text against the current position without
// mutating it.
func (s *Session) ParseMove(text string) (*engine.CandidateMove, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ParseMove(text)
}

// Reset replaces the position with a fresh one and returns the new state.
func (s *Session) Reset() core.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.Reset()
	return s.viewLocked()
}

// View returns the current full state.
func (s *Session) View() core.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Summary returns the list-view projection.
func (s *Session) Summary() core.GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.GameSummary{
		ID:         s.ID,
		FEN:        s.game.FEN(),
		Turn:       s.game.Turn(),
		IsGameOver: s.game.IsGameOver(),
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CloneGame returns an independent copy of the position for the
// move-suggestion gateway. The suggestion is later validated against the
// live position by ApplyMove, which rejects it if the position has moved on.
func (s *Session) CloneGame() *engine.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Clone()
}

// Participants returns a snapshot of the attached connection identifiers.
func (s *Session) Participants() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.participants))
	for id := range s.participants {
		out = append(out, id)
	}
	return out
}

// HasParticipant reports whether a connection is attached to this session.
func (s *Session) HasParticipant(connID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.participants[connID]
	return ok
}

// ScheduleAI arms the automated-move timer, replacing any pending one. The
// timer is keyed to the session so a restart can invalidate it.
func (s *Session) ScheduleAI(delay time.Duration, task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aiTimer != nil {
		s.aiTimer.Stop()
	}
	s.aiTimer = time.AfterFunc(delay, task)
}

// CancelAI stops a pending automated-move timer, if any.
func (s *Session) CancelAI() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.aiTimer != nil {
		s.aiTimer.Stop()
		s.aiTimer = nil
	}
}

func (s *Session) addParticipant(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[connID] = struct{}{}
}

func (s *Session) removeParticipant(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participants, connID)
}

func (s *Session) viewLocked() core.GameView {
	return core.GameView{
		ID:         s.ID,
		FEN:        s.game.FEN(),
		PGN:        s.game.PGN(),
		Turn:       s.game.Turn(),
		Status:     s.game.Status(),
		IsGameOver: s.game.IsGameOver(),
		IsAIGame:   s.AIGame,
		History:    s.game.History(),
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
	}
}
