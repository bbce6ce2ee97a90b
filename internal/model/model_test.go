package model

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id := NewID("note")
	if !strings.HasPrefix(id, "note-") {
		t.Errorf("id = %q, want note- prefix", id)
	}
	if len(id) != len("note-")+36 {
		t.Errorf("id = %q, want a UUID after the prefix", id)
	}
	if id == NewID("note") {
		t.Error("consecutive ids must differ")
	}
}

func TestKanbanStatusValid(t *testing.T) {
	for _, s := range KanbanStatuses {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []KanbanStatus{"", "todo", "DONE", "Archived"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
