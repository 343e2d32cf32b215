package pagesession

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"plusultra/internal/application/ui"
)

func newTestStore(ttl time.Duration) (*Store, *time.Time) {
	now := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	st := NewStore(ttl, 0)
	st.SetClock(func() time.Time { return now })
	return st, &now
}

// TestStoreCreateGet verifies a created session can be retrieved for its page.
func TestStoreCreateGet(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create("about")
	if s.ID == "" {
		t.Fatal("session ID should not be empty")
	}

	got, err := st.Get(s.ID, "about")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != s {
		t.Error("Get() returned a different session")
	}
}

// TestStoreGetWrongPage verifies sessions are scoped to their page.
func TestStoreGetWrongPage(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create("about")
	if _, err := st.Get(s.ID, "registration"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if _, err := st.Get("no-such-id", "about"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

// TestStoreExpiry verifies idle sessions expire and active ones are refreshed.
func TestStoreExpiry(t *testing.T) {
	st, now := newTestStore(time.Hour)
	active := st.Create("creativity")
	idle := st.Create("creativity")

	*now = now.Add(50 * time.Minute)
	if _, err := st.Get(active.ID, "creativity"); err != nil {
		t.Fatalf("Get(active) error = %v", err)
	}

	*now = now.Add(20 * time.Minute)
	if _, err := st.Get(active.ID, "creativity"); err != nil {
		t.Errorf("active session should have been refreshed, got %v", err)
	}
	if _, err := st.Get(idle.ID, "creativity"); !errors.Is(err, ErrNotFound) {
		t.Errorf("idle session error = %v, want ErrNotFound", err)
	}
}

// TestStoreSweep verifies expired sessions are removed in bulk.
func TestStoreSweep(t *testing.T) {
	st, now := newTestStore(time.Minute)
	st.Create("about")
	st.Create("about")

	*now = now.Add(2 * time.Minute)
	st.Create("about")

	if got := st.Sweep(); got != 2 {
		t.Errorf("Sweep() = %d, want 2", got)
	}
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
}

// TestStoreDelete verifies explicit removal.
func TestStoreDelete(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create("about")
	st.Delete(s.ID)
	if _, err := st.Get(s.ID, "about"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
}

// TestStoreLimitEvictsLeastRecentlySeen verifies the store never grows past its
// limit and drops the session idle the longest.
func TestStoreLimitEvictsLeastRecentlySeen(t *testing.T) {
	now := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	st := NewStore(time.Hour, 3)
	st.SetClock(func() time.Time { return now })

	first := st.Create("about")
	second := st.Create("about")
	third := st.Create("about")

	now = now.Add(time.Minute)
	if _, err := st.Get(first.ID, "about"); err != nil {
		t.Fatalf("Get(first) error = %v", err)
	}

	fourth := st.Create("about")
	if st.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", st.Len())
	}
	if _, err := st.Get(second.ID, "about"); !errors.Is(err, ErrNotFound) {
		t.Errorf("least recently seen session error = %v, want ErrNotFound", err)
	}
	for _, s := range []*Session{first, third, fourth} {
		if _, err := st.Get(s.ID, "about"); err != nil {
			t.Errorf("Get(%s) error = %v", s.ID, err)
		}
	}
}

// TestStoreLimitHoldsUnderLoad verifies many page loads keep the store at its limit.
func TestStoreLimitHoldsUnderLoad(t *testing.T) {
	st := NewStore(time.Hour, 50)
	for i := 0; i < 1000; i++ {
		st.Create("creativity")
	}
	if st.Len() != 50 {
		t.Errorf("Len() = %d, want 50", st.Len())
	}
}

// TestSessionDoSerializes verifies concurrent events on one session apply one at a time.
func TestSessionDoSerializes(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create("creativity")
	count := 0
	s.Events.On("tick", func(ui.Surface) error {
		count++
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Do(func(s *Session) error {
				return s.Events.Fire("tick", s.State)
			})
			if err != nil {
				t.Errorf("Fire() error = %v", err)
			}
		}()
	}
	wg.Wait()
	if count != 100 {
		t.Errorf("count = %d, want 100", count)
	}
}

// TestStoreRunStops verifies the sweeper exits when the context is cancelled.
func TestStoreRunStops(t *testing.T) {
	st := NewStore(time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
