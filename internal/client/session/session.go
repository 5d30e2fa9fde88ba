// Package session holds the interactive client's mutable state between
// commands.
package session

import (
	"chesslive/internal/client/api"
)

type Session struct {
	APIBaseURL       string
	Client           *api.Client
	CurrentGame      string
	CurrentGameState *api.GameView
	Verbose          bool
}

func (s *Session) GetAPIBaseURL() string     { return s.APIBaseURL }
func (s *Session) SetAPIBaseURL(url string)  { s.APIBaseURL = url }
func (s *Session) GetCurrentGame() string    { return s.CurrentGame }
func (s *Session) SetCurrentGame(id string)  { s.CurrentGame = id }
func (s *Session) GetClient() interface{}    { return s.Client }
func (s *Session) IsVerbose() bool           { return s.Verbose }
func (s *Session) GetGameState() *api.GameView {
	return s.CurrentGameState
}

func (s *Session) SetGameState(v *api.GameView) {
	s.CurrentGameState = v
	if v != nil {
		s.CurrentGame = v.ID
	}
}
