// ABOUTME: Trending content catalog loaded from the embedded YAML fixture file.
// ABOUTME: Hands out copies of records so the fixture set is never mutated.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/contentai/internal/models"
)

//go:embed fixtures.yaml
var fixtureData []byte

// ErrNotFound is returned when no catalog item has the requested ID.
var ErrNotFound = errors.New("content not found")

// Catalog is an immutable, ordered collection of content items.
type Catalog struct {
	items []models.ContentItem
	byID  map[string]int
}

// Default parses the embedded fixture catalog.
func Default() (*Catalog, error) {
	return Parse(fixtureData)
}

// Parse builds a catalog from a YAML list of content items.
func Parse(data []byte) (*Catalog, error) {
	var items []models.ContentItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(items)
}

// New builds a catalog from items, rejecting blank or duplicate IDs.
func New(items []models.ContentItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.ContentItem, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("catalog item %d has no id", i)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", item.ID)
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item.Clone())
	}
	return c, nil
}

// All returns a copy of every item in catalog order.
func (c *Catalog) All() []models.ContentItem {
	out := make([]models.ContentItem, len(c.items))
	for i, item := range c.items {
		out[i] = item.Clone()
	}
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns the item with the given ID.
func (c *Catalog) Get(id string) (models.ContentItem, error) {
	idx, ok := c.byID[id]
	if !ok {
		return models.ContentItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.items[idx].Clone(), nil
}

// Platforms returns the distinct platforms, sorted.
func (c *Catalog) Platforms() []string {
	return distinct(c.items, func(item models.ContentItem) string { return item.Platform })
}

// Categories returns the distinct non-empty categories, sorted.
func (c *Catalog) Categories() []string {
	return distinct(c.items, func(item models.ContentItem) string { return item.Category })
}

// Trending returns the n highest-scoring items. n <= 0 returns all of them.
func (c *Catalog) Trending(n int) []models.ContentItem {
	out := Apply(c.items, Query{Sort: &SortSpec{Field: SortPerformanceScore, Direction: Desc}})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func distinct(items []models.ContentItem, key func(models.ContentItem) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		k := key(item)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
