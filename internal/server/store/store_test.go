package store

import (
	"strings"
	"testing"
	"time"

	"chesslive/internal/server/engine"
)

func TestCreateAndGet(t *testing.T) {
	st := New()
	sess := st.Create(true)

	if !strings.HasPrefix(sess.ID, "game_") {
		t.Fatalf("unexpected id format: %q", sess.ID)
	}
	if !sess.AIGame {
		t.Fatalf("expected AI game flag to be set")
	}

	got, ok := st.Get(sess.ID)
	if !ok || got != sess {
		t.Fatalf("Get did not return the created session")
	}
	if _, ok := st.Get("game_missing"); ok {
		t.Fatalf("expected lookup miss for unknown id")
	}
}

func TestIDsAreUnique(t *testing.T) {
	st := New()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess := st.Create(false)
		if seen[sess.ID] {
			t.Fatalf("duplicate id %q", sess.ID)
		}
		seen[sess.ID] = true
	}
}

func TestListInsertionOrder(t *testing.T) {
	st := New()
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, st.Create(false).ID)
	}

	list := st.List()
	if len(list) != len(ids) {
		t.Fatalf("expected %d sessions, got %d", len(ids), len(list))
	}
	for i, sess := range list {
		if sess.ID != ids[i] {
			t.Fatalf("position %d: got %q, want %q", i, sess.ID, ids[i])
		}
	}
}

func TestAttachDetach(t *testing.T) {
	st := New()
	sess := st.Create(false)

	st.Attach(sess.ID, "conn1")
	if !sess.HasParticipant("conn1") {
		t.Fatalf("expected conn1 to be a participant")
	}

	got, ok := st.SessionFor("conn1")
	if !ok || got != sess {
		t.Fatalf("SessionFor did not resolve the attachment")
	}

	st.Detach("conn1")
	if sess.HasParticipant("conn1") {
		t.Fatalf("expected conn1 to be removed")
	}
	if _, ok := st.SessionFor("conn1"); ok {
		t.Fatalf("expected reverse mapping to be cleared")
	}
}

func TestAttachMovesConnectionBetweenSessions(t *testing.T) {
	st := New()
	a := st.Create(false)
	b := st.Create(false)

	st.Attach(a.ID, "conn1")
	st.Attach(b.ID, "conn1")

	if a.HasParticipant("conn1") {
		t.Fatalf("expected conn1 to be detached from the first session")
	}
	if !b.HasParticipant("conn1") {
		t.Fatalf("expected conn1 to be attached to the second session")
	}
	got, _ := st.SessionFor("conn1")
	if got != b {
		t.Fatalf("reverse mapping points at the wrong session")
	}
}

func TestAttachUnknownSessionIsNoop(t *testing.T) {
	st := New()
	st.Attach("game_missing", "conn1")
	if _, ok := st.SessionFor("conn1"); ok {
		t.Fatalf("attach to unknown session recorded a mapping")
	}
	// Detach without a mapping must not panic.
	st.Detach("conn1")
}

func TestSessionApplyMoveReturnsConsistentView(t *testing.T) {
	st := New()
	sess := st.Create(false)

	detail, view, err := sess.ApplyMove(engine.CandidateMove{From: "e2", To: "e4"})
	if err != nil {
		t.Fatalf("legal move rejected: %v", err)
	}
	if detail.SAN != "e4" {
		t.Fatalf("unexpected SAN %q", detail.SAN)
	}
	if view.Turn != engine.Black {
		t.Fatalf("view turn not advanced: %q", view.Turn)
	}
	if len(view.History) != 1 {
		t.Fatalf("view history has %d entries", len(view.History))
	}
	if view.ID != sess.ID {
		t.Fatalf("view id mismatch")
	}

	if _, _, err := sess.ApplyMove(engine.CandidateMove{From: "e2", To: "e4"}); err == nil {
		t.Fatalf("expected error replaying the same move")
	}
}

func TestSessionReset(t *testing.T) {
	st := New()
	sess := st.Create(true)

	if _, _, err := sess.ApplyMove(engine.CandidateMove{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("setup move rejected: %v", err)
	}

	view := sess.Reset()
	if len(view.History) != 0 {
		t.Fatalf("reset view still has history")
	}
	if view.Turn != engine.White {
		t.Fatalf("reset view turn %q", view.Turn)
	}
	if !view.IsAIGame {
		t.Fatalf("reset dropped the AI flag")
	}
}

func TestSessionSummary(t *testing.T) {
	st := New()
	sess := st.Create(false)
	sum := sess.Summary()
	if sum.ID != sess.ID {
		t.Fatalf("summary id mismatch")
	}
	if sum.Turn != engine.White || sum.IsGameOver {
		t.Fatalf("unexpected summary for fresh game: %+v", sum)
	}
	if _, err := time.Parse(time.RFC3339, sum.CreatedAt); err != nil {
		t.Fatalf("createdAt not RFC3339: %q", sum.CreatedAt)
	}
}

func TestScheduleAIReplacesPendingTimer(t *testing.T) {
	st := New()
	sess := st.Create(true)

	fired := make(chan string, 2)
	sess.ScheduleAI(30*time.Millisecond, func() { fired <- "first" })
	sess.ScheduleAI(30*time.Millisecond, func() { fired <- "second" })

	select {
	case got := <-fired:
		if got != "second" {
			t.Fatalf("replaced timer fired: %q", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("timer never fired")
	}

	select {
	case got := <-fired:
		t.Fatalf("unexpected extra firing: %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelAI(t *testing.T) {
	st := New()
	sess := st.Create(true)

	fired := make(chan struct{}, 1)
	sess.ScheduleAI(30*time.Millisecond, func() { fired <- struct{}{} })
	sess.CancelAI()

	select {
	case <-fired:
		t.Fatalf("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}

	// Cancel with no pending timer must not panic.
	sess.CancelAI()
}

func TestCloneGameIsSnapshot(t *testing.T) {
	st := New()
	sess := st.Create(true)

	snap := sess.CloneGame()
	if _, _, err := sess.ApplyMove(engine.CandidateMove{From: "e2", To: "e4"}); err != nil {
		t.Fatalf("setup move rejected: %v", err)
	}
	if snap.Turn() != engine.White {
		t.Fatalf("snapshot observed a later move")
	}
}
