package core

import (
	"encoding/json"
	"testing"
)

func TestMoveArgUnmarshalString(t *testing.T) {
	var m MoveArg
	if err := json.Unmarshal([]byte(`"Nf3"`), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Notation != "Nf3" || m.IsObject() {
		t.Fatalf("unexpected result: %+v", m)
	}
}

func TestMoveArgUnmarshalObject(t *testing.T) {
	var m MoveArg
	if err := json.Unmarshal([]byte(`{"from":"e7","to":"e8","promotion":"q"}`), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsObject() || m.From != "e7" || m.To != "e8" || m.Promotion != "q" {
		t.Fatalf("unexpected result: %+v", m)
	}
}

func TestMoveArgUnmarshalRejectsOtherShapes(t *testing.T) {
	var m MoveArg
	if err := json.Unmarshal([]byte(`42`), &m); err == nil {
		t.Fatalf("expected error for numeric move")
	}
	if err := json.Unmarshal([]byte(`["e2","e4"]`), &m); err == nil {
		t.Fatalf("expected error for array move")
	}
}

func TestMoveArgMarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(MoveArg{Notation: "e4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"e4"` {
		t.Fatalf("notation form marshalled as %s", data)
	}

	data, err = json.Marshal(MoveArg{From: "e2", To: "e4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"from":"e2","to":"e4"}` {
		t.Fatalf("object form marshalled as %s", data)
	}
}
