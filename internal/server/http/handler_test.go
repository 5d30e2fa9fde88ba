package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"chesslive/internal/server/advisor"
	"chesslive/internal/server/config"
	"chesslive/internal/server/core"
	"chesslive/internal/server/engine"
	"chesslive/internal/server/store"
	"chesslive/internal/server/ws"
)

type fakeSuggester struct {
	cand *engine.CandidateMove
	err  error
}

func (f *fakeSuggester) SuggestMove(ctx context.Context, g *engine.Game) (*engine.CandidateMove, error) {
	return f.cand, f.err
}

func newTestApp(sug Suggester) (*fiber.App, *store.Store) {
	st := store.New()
	log := zap.NewNop()
	hub := ws.NewHub(log)
	wsh := ws.NewHandler(st, &fakeSuggester{}, hub, 0, log)
	cfg := &config.Config{FrontendURL: "http://localhost:3000"}
	app := NewFiberApp(st, sug, wsh, cfg, true, log)
	return app, st
}

func decodeBody(t *testing.T, body io.Reader, v any) {
	t.Helper()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode body %s: %v", data, err)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(&fakeSuggester{})
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestCreateGame(t *testing.T) {
	app, st := newTestApp(&fakeSuggester{})

	req := httptest.NewRequest("POST", "/games", strings.NewReader(`{"isAIGame":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.GameResponse
	decodeBody(t, resp.Body, &body)
	if !body.Success || body.Game.ID == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !body.Game.IsAIGame {
		t.Fatalf("AI flag dropped")
	}
	if body.Game.Turn != engine.White {
		t.Fatalf("fresh game turn %q", body.Game.Turn)
	}

	if _, ok := st.Get(body.Game.ID); !ok {
		t.Fatalf("created game not in store")
	}
}

func TestCreateGameEmptyBody(t *testing.T) {
	app, _ := newTestApp(&fakeSuggester{})

	resp, err := app.Test(httptest.NewRequest("POST", "/games", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.GameResponse
	decodeBody(t, resp.Body, &body)
	if body.Game.IsAIGame {
		t.Fatalf("empty body created an AI game")
	}
}

func TestListGames(t *testing.T) {
	app, st := newTestApp(&fakeSuggester{})
	a := st.Create(false)
	b := st.Create(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/games", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.GameListResponse
	decodeBody(t, resp.Body, &body)
	if len(body.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(body.Games))
	}
	if body.Games[0].ID != a.ID || body.Games[1].ID != b.ID {
		t.Fatalf("unexpected order: %+v", body.Games)
	}
}

func TestGetGameNotFound(t *testing.T) {
	app, _ := newTestApp(&fakeSuggester{})

	resp, err := app.Test(httptest.NewRequest("GET", "/games/game_missing", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.ErrorResponse
	decodeBody(t, resp.Body, &body)
	if body.Code != core.ErrGameNotFound {
		t.Fatalf("unexpected code %q", body.Code)
	}
}

func TestGetGameIncludesHistory(t *testing.T) {
	app, st := newTestApp(&fakeSuggester{})
	sess := st.Create(false)
	if _, _, err := sess.ApplyMove(engine.CandidateMove{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("setup move rejected: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/games/"+sess.ID, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var body core.GameResponse
	decodeBody(t, resp.Body, &body)
	if len(body.Game.History) != 1 || body.Game.History[0].SAN != "e4" {
		t.Fatalf("unexpected history: %+v", body.Game.History)
	}
	if body.Game.Turn != engine.Black {
		t.Fatalf("turn %q", body.Game.Turn)
	}
}

func TestAIMove(t *testing.T) {
	sug := &fakeSuggester{cand: &engine.CandidateMove{From: "e2", To: "e4"}}
	app, st := newTestApp(sug)
	sess := st.Create(true)

	resp, err := app.Test(httptest.NewRequest("POST", "/games/"+sess.ID+"/ai-move", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.AIMoveResponse
	decodeBody(t, resp.Body, &body)
	if !body.Success || body.Move == nil || body.Move.SAN != "e4" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Turn != engine.Black {
		t.Fatalf("turn not advanced: %q", body.Turn)
	}
	if sess.View().Turn != engine.Black {
		t.Fatalf("store session not mutated")
	}
}

func TestAIMoveOnHumanGame(t *testing.T) {
	app, st := newTestApp(&fakeSuggester{})
	sess := st.Create(false)

	resp, err := app.Test(httptest.NewRequest("POST", "/games/"+sess.ID+"/ai-move", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.ErrorResponse
	decodeBody(t, resp.Body, &body)
	if body.Code != core.ErrNotAIGame {
		t.Fatalf("unexpected code %q", body.Code)
	}
}

func TestAIMoveNoLegalMoves(t *testing.T) {
	app, st := newTestApp(&fakeSuggester{err: advisor.ErrNoLegalMoves})
	sess := st.Create(true)

	resp, err := app.Test(httptest.NewRequest("POST", "/games/"+sess.ID+"/ai-move", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.ErrorResponse
	decodeBody(t, resp.Body, &body)
	if body.Code != core.ErrNoMoveAvailable {
		t.Fatalf("unexpected code %q", body.Code)
	}
}

func TestAIMoveIllegalSuggestion(t *testing.T) {
	app, st := newTestApp(&fakeSuggester{cand: &engine.CandidateMove{From: "e2", To: "e5"}})
	sess := st.Create(true)

	resp, err := app.Test(httptest.NewRequest("POST", "/games/"+sess.ID+"/ai-move", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var body core.ErrorResponse
	decodeBody(t, resp.Body, &body)
	if body.Code != core.ErrInvalidMove {
		t.Fatalf("unexpected code %q", body.Code)
	}
	if sess.View().Turn != engine.White {
		t.Fatalf("rejected suggestion mutated the position")
	}
}

func TestWSRouteRequiresUpgrade(t *testing.T) {
	app, _ := newTestApp(&fakeSuggester{})

	resp, err := app.Test(httptest.NewRequest("GET", "/ws", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
