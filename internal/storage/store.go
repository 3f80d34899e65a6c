// ABOUTME: Interface definitions for saved content, generation history, and sync history.
// ABOUTME: Defines the contracts the CLI, HTTP API, and MCP tools program against.
package storage

import (
	"github.com/2389-research/contentai/internal/models"
)

// Capacity limits for the capped lists.
const (
	MaxHistory     = 20
	MaxSyncHistory = 50
)

// ToggleResult reports what Toggle did.
type ToggleResult string

// Toggle outcomes.
const (
	Saved   ToggleResult = "saved"
	Removed ToggleResult = "removed"
)

// SavedStore is a set of content items keyed by ID, in insertion order.
type SavedStore interface {
	// List returns saved items in insertion order.
	List() []models.ContentItem

	// IsSaved reports whether an item with id is saved.
	IsSaved(id string) bool

	// Toggle removes the item if saved, otherwise adds it.
	Toggle(item models.ContentItem) (ToggleResult, error)

	// Replace overwrites the whole set, dropping duplicate IDs.
	Replace(items []models.ContentItem) error
}

// HistoryStore is the newest-first list of generated drafts.
type HistoryStore interface {
	// List returns entries newest first.
	List() []models.GeneratedContent

	// Get returns the entry with id.
	Get(id string) (models.GeneratedContent, bool)

	// Add moves or inserts item at the front and truncates to MaxHistory.
	Add(item models.GeneratedContent) error

	// Remove deletes the entry with id. Missing IDs are ignored.
	Remove(id string) error

	// Clear deletes every entry.
	Clear() error

	// Replace overwrites the list, applying the same dedupe and cap as Add.
	Replace(items []models.GeneratedContent) error
}

// SyncHistoryStore is the newest-first list of GitHub sync attempts.
type SyncHistoryStore interface {
	// List returns records newest first.
	List() []models.SyncRecord

	// Add prepends record and truncates to MaxSyncHistory.
	Add(record models.SyncRecord) error
}
