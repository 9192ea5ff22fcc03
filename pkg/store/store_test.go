package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diagramkit/diagramkit/pkg/model"
)

func testEntry(id string, savedAt time.Time) Entry {
	return Entry{
		Layout: model.PositionedLayout{
			ID:          id,
			SlideWidth:  13.333,
			SlideHeight: 7.5,
			Archetype:   "funnel",
		},
		Archetype: "funnel",
		Score:     92,
		SavedAt:   savedAt,
	}
}

func TestMemoryStoreSaveGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	entry := testEntry("layout-1", time.Now())
	if err := s.Save(ctx, entry); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "layout-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Layout.ID != "layout-1" {
		t.Errorf("Layout.ID = %q, want %q", got.Layout.ID, "layout-1")
	}
	if got.Archetype != "funnel" {
		t.Errorf("Archetype = %q, want %q", got.Archetype, "funnel")
	}
	if got.Score != 92 {
		t.Errorf("Score = %v, want 92", got.Score)
	}
}

func TestMemoryStoreSaveReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := testEntry("layout-1", time.Now())
	first.Score = 50
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := testEntry("layout-1", time.Now())
	second.Score = 88
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "layout-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Score != 88 {
		t.Errorf("Score = %v, want 88 after replace", got.Score)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("List returned %d entries, want 1", len(all))
	}
}

func TestMemoryStoreSaveMissingID(t *testing.T) {
	s := NewMemoryStore()

	err := s.Save(context.Background(), Entry{Archetype: "funnel"})
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("Save with empty ID: err = %v, want ErrMissingID", err)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		entry := testEntry(id, base.Add(time.Duration(i)*time.Hour))
		if err := s.Save(ctx, entry); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	got, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(got))
	}
	wantOrder := []string{"new", "mid", "old"}
	for i, want := range wantOrder {
		if got[i].Layout.ID != want {
			t.Errorf("List[%d].Layout.ID = %q, want %q", i, got[i].Layout.ID, want)
		}
	}
}

func TestMemoryStoreListLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c", "d"} {
		if err := s.Save(ctx, testEntry(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	got, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List(2) returned %d entries, want 2", len(got))
	}
	if got[0].Layout.ID != "d" || got[1].Layout.ID != "c" {
		t.Errorf("List(2) = [%s %s], want [d c]", got[0].Layout.ID, got[1].Layout.ID)
	}
}
