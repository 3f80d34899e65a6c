// ABOUTME: Similarity ranking of catalog content using vector embeddings.
// ABOUTME: Powers related-content suggestions and free-text semantic ranking.
package similar

import (
	"math"
	"sort"
	"strings"

	"github.com/2389-research/contentai/internal/models"
)

// Result pairs a content item with its similarity score.
type Result struct {
	Item  models.ContentItem `json:"item"`
	Score float64            `json:"score"`
}

// CosineSimilarity computes the cosine similarity between two vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Document returns the text embedded for an item.
func Document(item models.ContentItem) string {
	parts := []string{item.Title, item.Description, item.Category}
	parts = append(parts, item.Tags...)
	// Tags are the strongest topical signal.
	parts = append(parts, item.Tags...)
	return strings.Join(parts, " ")
}

// Related ranks items by similarity to target, excluding target itself.
// Items with no overlap are dropped. limit <= 0 defaults to 3.
func Related(embedder Embedder, items []models.ContentItem, target models.ContentItem, limit int) ([]Result, error) {
	targetVec, err := embedder.Embed(Document(target))
	if err != nil {
		return nil, err
	}
	candidates := make([]models.ContentItem, 0, len(items))
	for _, item := range items {
		if item.ID != target.ID {
			candidates = append(candidates, item)
		}
	}
	if limit <= 0 {
		limit = 3
	}
	return rank(embedder, candidates, targetVec, limit)
}

// Rank orders items by similarity to a free-text query. limit <= 0 defaults to 10.
func Rank(embedder Embedder, items []models.ContentItem, query string, limit int) ([]Result, error) {
	queryVec, err := embedder.Embed(query)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	return rank(embedder, items, queryVec, limit)
}

func rank(embedder Embedder, items []models.ContentItem, vec []float32, limit int) ([]Result, error) {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		itemVec, err := embedder.Embed(Document(item))
		if err != nil {
			return nil, err
		}
		score := CosineSimilarity(vec, itemVec)
		if score <= 0 {
			continue
		}
		results = append(results, Result{Item: item.Clone(), Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > len(results) {
		limit = len(results)
	}
	return results[:limit], nil
}
