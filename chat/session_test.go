package chat

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"wefix/models"
)

func turn(msg string) models.ConversationTurn {
	return models.ConversationTurn{
		UserMessage: msg,
		Intent:      string(IntentFallback),
		Timestamp:   time.Now(),
	}
}

func TestSessionStoreAppendAndHistory(t *testing.T) {
	store := NewSessionStore()

	store.Append("s1", turn("first"))
	store.Append("s1", turn("second"))
	store.Append("s2", turn("other session"))

	history := store.History("s1")
	if len(history) != 2 {
		t.Fatalf("got %d turns, want 2", len(history))
	}
	if history[0].UserMessage != "first" || history[1].UserMessage != "second" {
		t.Errorf("history order wrong: %+v", history)
	}
	if got := store.History("s2"); len(got) != 1 {
		t.Errorf("s2 has %d turns, want 1", len(got))
	}
	if got := store.History("unknown"); got != nil {
		t.Errorf("unknown session returned %+v, want nil", got)
	}
}

func TestSessionStoreHistoryIsACopy(t *testing.T) {
	store := NewSessionStore()
	store.Append("s1", turn("original"))

	history := store.History("s1")
	history[0].UserMessage = "mutated"

	if got := store.History("s1"); got[0].UserMessage != "original" {
		t.Error("History must return a copy, not the backing slice")
	}
}

func TestSessionStoreEvictsOldest(t *testing.T) {
	store := NewSessionStore()

	for i := 0; i < maxSessions; i++ {
		store.Append(fmt.Sprintf("s%d", i), turn("hi"))
	}
	store.Append("newest", turn("hi"))

	if got := store.Len(); got != maxSessions {
		t.Errorf("Len = %d, want %d", got, maxSessions)
	}
	if store.History("s0") != nil {
		t.Error("s0 should have been evicted as the oldest session")
	}
	if store.History("newest") == nil {
		t.Error("newest session missing")
	}

	// Appending to a surviving session must not count as a new one.
	store.Append("s1", turn("again"))
	if got := store.Len(); got != maxSessions {
		t.Errorf("Len after re-append = %d, want %d", got, maxSessions)
	}
}

func TestSessionStoreClearAndExport(t *testing.T) {
	store := NewSessionStore()
	store.Append("s1", turn("one"))
	store.Append("s2", turn("two"))

	store.Clear("s1")
	if store.History("s1") != nil {
		t.Error("cleared session still has history")
	}

	export := store.Export()
	if len(export) != 1 {
		t.Fatalf("export has %d sessions, want 1", len(export))
	}
	if turns := export["s2"]; len(turns) != 1 || turns[0].UserMessage != "two" {
		t.Errorf("export[s2] = %+v", turns)
	}
}

func TestAppendIfCurrentDropsStaleTurns(t *testing.T) {
	store := NewSessionStore()

	epoch := store.Touch("s1")
	store.Clear("s1")

	if store.AppendIfCurrent("s1", epoch, turn("stale")) {
		t.Error("turn from before the reset must be dropped")
	}

	fresh := store.Touch("s1")
	if fresh == epoch {
		t.Error("recreated session must get a new epoch")
	}
	if !store.AppendIfCurrent("s1", fresh, turn("current")) {
		t.Error("turn at the current epoch must be kept")
	}
	if got := store.History("s1"); len(got) != 1 || got[0].UserMessage != "current" {
		t.Errorf("history = %+v, want only the current turn", got)
	}
}

func TestSmartSuggestions(t *testing.T) {
	history := []models.ConversationTurn{
		{Intent: string(IntentGreeting)},
		{Intent: string(IntentIssueDescription)},
	}
	got := SmartSuggestions(history)
	if len(got) == 0 || got[0] != "Submit this report" {
		t.Errorf("got %v, want submit suggestion first", got)
	}
	if len(got) > maxSuggestions {
		t.Errorf("got %d suggestions, cap is %d", len(got), maxSuggestions)
	}

	repeat := []models.ConversationTurn{
		{Intent: string(IntentIssueDescription)},
		{Intent: string(IntentIssueDescription)},
	}
	got = SmartSuggestions(repeat)
	found := false
	for _, s := range got {
		if s == "Find similar issues" {
			found = true
		}
	}
	if !found {
		t.Errorf("got %v, want the similarity shortcut for repeat describers", got)
	}
}

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if !strings.HasPrefix(id, "session_") {
		t.Errorf("id %q missing prefix", id)
	}
	if id == NewSessionID() && id == NewSessionID() {
		t.Error("session IDs should not repeat")
	}
}
