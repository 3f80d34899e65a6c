// ABOUTME: JSON-backed saved set, generation history, and sync history stores.
// ABOUTME: Each store rehydrates eagerly and rewrites its whole collection on every mutation.
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/2389-research/contentai/internal/logging"
	"github.com/2389-research/contentai/internal/models"
)

// load rehydrates the list under key. A corrupt document is logged and treated as empty;
// a document that cannot be read at all is an error.
func load[T any](local *LocalStore, key string) ([]T, error) {
	var items []T
	err := local.LoadJSON(key, &items)
	switch {
	case err == nil:
		return items, nil
	case errors.Is(err, ErrNotFound):
		return nil, nil
	case errors.Is(err, ErrCorrupt):
		logging.Log(context.Background()).Layer("storage").Op("load").Str("key", key).Err(err).
			Warn("discarding corrupt stored collection")
		return nil, nil
	default:
		return nil, err
	}
}

// SavedJSONStore implements SavedStore on a LocalStore key.
type SavedJSONStore struct {
	mu    sync.Mutex
	local *LocalStore
	items []models.ContentItem
}

// NewSavedStore loads the saved set from local.
func NewSavedStore(local *LocalStore) (*SavedJSONStore, error) {
	items, err := load[models.ContentItem](local, KeySavedContent)
	if err != nil {
		return nil, err
	}
	return &SavedJSONStore{local: local, items: dedupeContent(items)}, nil
}

// List returns saved items in insertion order.
func (s *SavedJSONStore) List() []models.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ContentItem, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// IsSaved reports whether id is saved.
func (s *SavedJSONStore) IsSaved(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Toggle removes item if present, otherwise appends it.
func (s *SavedJSONStore) Toggle(item models.ContentItem) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.ContentItem, 0, len(s.items)+1)
	result := Saved
	if idx := s.indexOf(item.ID); idx >= 0 {
		next = append(next, s.items[:idx]...)
		next = append(next, s.items[idx+1:]...)
		result = Removed
	} else {
		next = append(next, s.items...)
		next = append(next, item.Clone())
	}

	if err := s.local.SaveJSON(KeySavedContent, next); err != nil {
		return "", err
	}
	s.items = next
	return result, nil
}

// Replace overwrites the saved set.
func (s *SavedJSONStore) Replace(items []models.ContentItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := dedupeContent(items)
	if err := s.local.SaveJSON(KeySavedContent, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

func (s *SavedJSONStore) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func dedupeContent(items []models.ContentItem) []models.ContentItem {
	seen := make(map[string]bool, len(items))
	out := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item.Clone())
	}
	return out
}

// HistoryJSONStore implements HistoryStore on a LocalStore key.
type HistoryJSONStore struct {
	mu    sync.Mutex
	local *LocalStore
	items []models.GeneratedContent
}

// NewHistoryStore loads the generation history from local.
func NewHistoryStore(local *LocalStore) (*HistoryJSONStore, error) {
	items, err := load[models.GeneratedContent](local, KeyGenerationHistory)
	if err != nil {
		return nil, err
	}
	return &HistoryJSONStore{local: local, items: capHistory(items)}, nil
}

// List returns entries newest first.
func (s *HistoryJSONStore) List() []models.GeneratedContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.GeneratedContent(nil), s.items...)
}

// Get returns the entry with id.
func (s *HistoryJSONStore) Get(id string) (models.GeneratedContent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return models.GeneratedContent{}, false
}

// Add removes any entry with the same ID, prepends item, and keeps the newest MaxHistory.
func (s *HistoryJSONStore) Add(item models.GeneratedContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.GeneratedContent, 0, len(s.items)+1)
	next = append(next, item)
	for _, existing := range s.items {
		if existing.ID != item.ID {
			next = append(next, existing)
		}
	}
	return s.commit(capHistory(next))
}

// Remove deletes the entry with id.
func (s *HistoryJSONStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.GeneratedContent, 0, len(s.items))
	for _, existing := range s.items {
		if existing.ID != id {
			next = append(next, existing)
		}
	}
	return s.commit(next)
}

// Clear deletes every entry.
func (s *HistoryJSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit([]models.GeneratedContent{})
}

// Replace overwrites the history.
func (s *HistoryJSONStore) Replace(items []models.GeneratedContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(capHistory(items))
}

func (s *HistoryJSONStore) commit(next []models.GeneratedContent) error {
	if err := s.local.SaveJSON(KeyGenerationHistory, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// capHistory drops later duplicates and everything past MaxHistory.
func capHistory(items []models.GeneratedContent) []models.GeneratedContent {
	seen := make(map[string]bool, len(items))
	out := make([]models.GeneratedContent, 0, min(len(items), MaxHistory))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
		if len(out) == MaxHistory {
			break
		}
	}
	return out
}

// SyncHistoryJSONStore implements SyncHistoryStore on a LocalStore key.
type SyncHistoryJSONStore struct {
	mu      sync.Mutex
	local   *LocalStore
	records []models.SyncRecord
}

// NewSyncHistoryStore loads the sync history from local.
func NewSyncHistoryStore(local *LocalStore) (*SyncHistoryJSONStore, error) {
	records, err := load[models.SyncRecord](local, KeySyncHistory)
	if err != nil {
		return nil, err
	}
	if len(records) > MaxSyncHistory {
		records = records[:MaxSyncHistory]
	}
	return &SyncHistoryJSONStore{local: local, records: records}, nil
}

// List returns records newest first.
func (s *SyncHistoryJSONStore) List() []models.SyncRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SyncRecord(nil), s.records...)
}

// Add prepends record and keeps the newest MaxSyncHistory.
func (s *SyncHistoryJSONStore) Add(record models.SyncRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]models.SyncRecord{record}, s.records...)
	if len(next) > MaxSyncHistory {
		next = next[:MaxSyncHistory]
	}
	if err := s.local.SaveJSON(KeySyncHistory, next); err != nil {
		return err
	}
	s.records = next
	return nil
}
