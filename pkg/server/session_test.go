package server

import (
	"testing"
	"time"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *time.Time) {
	t.Helper()
	l, err := layout.Build(sampleTree(), layout.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	st := NewStore(l.Export(), ttl)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }
	return st, &now
}

func TestStoreExpiry(t *testing.T) {
	st, now := newTestStore(t, time.Hour)
	s, err := st.Create()
	if err != nil {
		t.Fatal(err)
	}

	*now = now.Add(30 * time.Minute)
	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("Get within ttl: %v", err)
	}

	// Get refreshed lastSeen, so another 50 minutes is still fine.
	*now = now.Add(50 * time.Minute)
	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("Get after refresh: %v", err)
	}

	*now = now.Add(2 * time.Hour)
	if _, err := st.Get(s.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expired Get error = %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("expired session should be dropped, have %d", st.Len())
	}
}

func TestStoreCleanup(t *testing.T) {
	st, now := newTestStore(t, time.Hour)
	st.Create()
	st.Create()

	*now = now.Add(2 * time.Hour)
	fresh, _ := st.Create()

	if n := st.Cleanup(); n != 2 {
		t.Errorf("Cleanup removed %d, want 2", n)
	}
	if _, err := st.Get(fresh.ID); err != nil {
		t.Errorf("fresh session should survive: %v", err)
	}
}

func TestSessionsStartFromBase(t *testing.T) {
	st, _ := newTestStore(t, 0)
	a, _ := st.Create()
	b, _ := st.Create()

	a.With(func(l *layout.Layout) error { return l.Toggle(layout.RootID) })

	b.With(func(l *layout.Layout) error {
		if l.Root().Collapsed {
			t.Error("sessions must not share layout state")
		}
		return nil
	})
}
