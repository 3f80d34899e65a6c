// ABOUTME: Tests for the saved set, generation history, and sync history stores.
// ABOUTME: Covers toggle pairs, history dedupe and cap, rehydration, and corrupt-file fallback.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/2389-research/contentai/internal/models"
)

func newLocal(t *testing.T) *LocalStore {
	t.Helper()
	local, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore error: %v", err)
	}
	return local
}

func content(id string) models.ContentItem {
	return models.ContentItem{ID: id, Title: "Title " + id, Platform: "tiktok", Tags: []string{"t"}}
}

func draft(id string) models.GeneratedContent {
	return models.GeneratedContent{ID: id, Kind: models.KindText, Platform: "instagram", Content: "draft " + id, CreatedAt: time.Now()}
}

func TestSavedToggleTwiceRestoresMembership(t *testing.T) {
	local := newLocal(t)
	store, err := NewSavedStore(local)
	if err != nil {
		t.Fatalf("NewSavedStore error: %v", err)
	}

	if _, err := store.Toggle(content("keep")); err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	before := store.List()

	res, err := store.Toggle(content("x"))
	if err != nil || res != Saved {
		t.Fatalf("first toggle = %q, %v", res, err)
	}
	if !store.IsSaved("x") {
		t.Error("expected x to be saved")
	}
	res, err = store.Toggle(content("x"))
	if err != nil || res != Removed {
		t.Fatalf("second toggle = %q, %v", res, err)
	}

	after := store.List()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Errorf("membership changed: before %v after %v", before, after)
	}
}

func TestSavedInsertionOrderAndRehydrate(t *testing.T) {
	local := newLocal(t)
	store, _ := NewSavedStore(local)
	for _, id := range []string{"3", "1", "2"} {
		if _, err := store.Toggle(content(id)); err != nil {
			t.Fatalf("Toggle error: %v", err)
		}
	}

	reopened, err := NewSavedStore(local)
	if err != nil {
		t.Fatalf("NewSavedStore error: %v", err)
	}
	got := reopened.List()
	if len(got) != 3 || got[0].ID != "3" || got[1].ID != "1" || got[2].ID != "2" {
		t.Errorf("unexpected order after reload: %v", got)
	}
}

func TestSavedListReturnsCopies(t *testing.T) {
	store, _ := NewSavedStore(newLocal(t))
	if _, err := store.Toggle(content("a")); err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	list := store.List()
	list[0].Tags[0] = "mutated"
	if store.List()[0].Tags[0] != "t" {
		t.Error("List exposed internal state")
	}
}

func TestSavedReplaceDedupes(t *testing.T) {
	store, _ := NewSavedStore(newLocal(t))
	if err := store.Replace([]models.ContentItem{content("a"), content("b"), content("a")}); err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	if got := store.List(); len(got) != 2 {
		t.Errorf("expected 2 items, got %d", len(got))
	}
}

func TestCorruptDocumentFallsBackToEmpty(t *testing.T) {
	local := newLocal(t)
	for _, key := range []string{KeySavedContent, KeyGenerationHistory, KeySyncHistory} {
		if err := os.WriteFile(filepath.Join(local.Dir(), key+".json"), []byte("{not json"), 0600); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	saved, err := NewSavedStore(local)
	if err != nil {
		t.Fatalf("NewSavedStore error: %v", err)
	}
	if len(saved.List()) != 0 {
		t.Error("expected empty saved set")
	}
	history, err := NewHistoryStore(local)
	if err != nil {
		t.Fatalf("NewHistoryStore error: %v", err)
	}
	if len(history.List()) != 0 {
		t.Error("expected empty history")
	}
	syncs, err := NewSyncHistoryStore(local)
	if err != nil {
		t.Fatalf("NewSyncHistoryStore error: %v", err)
	}
	if len(syncs.List()) != 0 {
		t.Error("expected empty sync history")
	}

	if _, err := saved.Toggle(content("a")); err != nil {
		t.Fatalf("Toggle after corrupt load error: %v", err)
	}
	if len(saved.List()) != 1 {
		t.Error("expected store to be writable after fallback")
	}
}

func TestUnreadableDocumentIsAnError(t *testing.T) {
	tests := []struct {
		key  string
		open func(*LocalStore) error
	}{
		{KeySavedContent, func(l *LocalStore) error { _, err := NewSavedStore(l); return err }},
		{KeyGenerationHistory, func(l *LocalStore) error { _, err := NewHistoryStore(l); return err }},
		{KeySyncHistory, func(l *LocalStore) error { _, err := NewSyncHistoryStore(l); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			local := newLocal(t)
			// A directory in place of the document fails the read itself.
			if err := os.Mkdir(filepath.Join(local.Dir(), tt.key+".json"), 0750); err != nil {
				t.Fatalf("mkdir error: %v", err)
			}
			err := tt.open(local)
			if err == nil {
				t.Fatal("expected read error")
			}
			if errors.Is(err, ErrCorrupt) || errors.Is(err, ErrNotFound) {
				t.Errorf("expected a plain I/O error, got %v", err)
			}
		})
	}
}

func TestHistoryCapAndNewestFirst(t *testing.T) {
	store, err := NewHistoryStore(newLocal(t))
	if err != nil {
		t.Fatalf("NewHistoryStore error: %v", err)
	}
	for i := 0; i < MaxHistory+5; i++ {
		if err := store.Add(draft(fmt.Sprintf("g%d", i))); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	got := store.List()
	if len(got) != MaxHistory {
		t.Fatalf("expected %d entries, got %d", MaxHistory, len(got))
	}
	if got[0].ID != fmt.Sprintf("g%d", MaxHistory+4) {
		t.Errorf("expected newest first, got %s", got[0].ID)
	}
	if _, ok := store.Get("g0"); ok {
		t.Error("expected oldest entry to be dropped")
	}
}

func TestHistoryReAddMovesToFront(t *testing.T) {
	store, _ := NewHistoryStore(newLocal(t))
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Add(draft(id)); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	updated := draft("a")
	updated.Content = "updated"
	if err := store.Add(updated); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	got := store.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].ID != "a" || got[0].Content != "updated" || got[1].ID != "c" || got[2].ID != "b" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestHistoryRemoveAndClear(t *testing.T) {
	local := newLocal(t)
	store, _ := NewHistoryStore(local)
	for _, id := range []string{"a", "b"} {
		if err := store.Add(draft(id)); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	if err := store.Remove("a"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if err := store.Remove("missing"); err != nil {
		t.Fatalf("Remove missing error: %v", err)
	}
	if got := store.List(); len(got) != 1 || got[0].ID != "b" {
		t.Errorf("unexpected history: %v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	reopened, _ := NewHistoryStore(local)
	if len(reopened.List()) != 0 {
		t.Error("expected cleared history to persist")
	}
}

func TestHistoryReplaceAppliesCap(t *testing.T) {
	store, _ := NewHistoryStore(newLocal(t))
	var items []models.GeneratedContent
	for i := 0; i < 30; i++ {
		items = append(items, draft(fmt.Sprintf("r%d", i)))
	}
	items = append([]models.GeneratedContent{draft("r1")}, items...)
	if err := store.Replace(items); err != nil {
		t.Fatalf("Replace error: %v", err)
	}
	got := store.List()
	if len(got) != MaxHistory {
		t.Errorf("expected %d entries, got %d", MaxHistory, len(got))
	}
	seen := map[string]bool{}
	for _, g := range got {
		if seen[g.ID] {
			t.Errorf("duplicate id %s", g.ID)
		}
		seen[g.ID] = true
	}
}

func TestSyncHistoryCap(t *testing.T) {
	local := newLocal(t)
	store, _ := NewSyncHistoryStore(local)
	for i := 0; i < MaxSyncHistory+3; i++ {
		rec := models.NewSyncRecord(models.SyncPush, "o/r", "main", "p")
		rec.Items = i
		if err := store.Add(*rec); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	got := store.List()
	if len(got) != MaxSyncHistory {
		t.Fatalf("expected %d records, got %d", MaxSyncHistory, len(got))
	}
	if got[0].Items != MaxSyncHistory+2 {
		t.Errorf("expected newest first, got %d", got[0].Items)
	}

	reopened, _ := NewSyncHistoryStore(local)
	if len(reopened.List()) != MaxSyncHistory {
		t.Error("expected sync history to persist")
	}
}
