package session

import (
	"testing"
	"time"

	"docfill/internal/convo"
	"docfill/internal/sample"
)

func newTestSession() *Session {
	tmpl := sample.New()
	conv := convo.New([]string{"[A]"}, map[string]string{"[A]": "What is A?"})
	return New(sample.Filename, tmpl, conv)
}

func TestNew_AssignsUniqueIDs(t *testing.T) {
	a, b := newTestSession(), newTestSession()
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
}

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore(time.Hour)
	sess := newTestSession()
	store.Put(sess)

	if got := store.Get(sess.ID); got != sess {
		t.Fatal("expected stored session back")
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}

	store.Delete(sess.ID)
	if store.Get(sess.ID) != nil {
		t.Error("expected session gone after delete")
	}
}

func TestStore_CleanupEvictsIdleSessions(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	sess := newTestSession()
	store.Put(sess)

	time.Sleep(20 * time.Millisecond)
	store.Cleanup()

	if store.Len() != 0 {
		t.Errorf("expected idle session evicted, %d left", store.Len())
	}
}

func TestStore_GetRefreshesActivity(t *testing.T) {
	store := NewStore(30 * time.Millisecond)
	sess := newTestSession()
	store.Put(sess)

	// Keep touching the session past its original TTL.
	for i := 0; i < 3; i++ {
		time.Sleep(15 * time.Millisecond)
		if store.Get(sess.ID) == nil {
			t.Fatal("session should still be live while active")
		}
	}
	store.Cleanup()
	if store.Get(sess.ID) == nil {
		t.Error("recently touched session must survive cleanup")
	}
}
