// ABOUTME: Tests for cosine similarity, the hashed embedder, and related-content ranking.
// ABOUTME: Uses a deterministic test embedder alongside the real HashEmbedder.
package similar

import (
	"errors"
	"math"
	"testing"

	"github.com/2389-research/contentai/internal/catalog"
	"github.com/2389-research/contentai/internal/models"
)

type failingEmbedder struct{}

func (failingEmbedder) Embed(string) ([]float32, error) { return nil, errors.New("no model") }
func (failingEmbedder) Dimension() int                  { return 0 }

func TestCosineSimilarityIdentical(t *testing.T) {
	a := []float32{1, 2, 3}
	if score := CosineSimilarity(a, a); math.Abs(score-1.0) > 0.0001 {
		t.Errorf("expected ~1.0 for identical vectors, got %f", score)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	if score := CosineSimilarity([]float32{1, 0, 0}, []float32{0, 1, 0}); math.Abs(score) > 0.0001 {
		t.Errorf("expected ~0 for orthogonal vectors, got %f", score)
	}
}

func TestCosineSimilarityMismatched(t *testing.T) {
	if CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}) != 0 {
		t.Error("expected 0 for mismatched lengths")
	}
	if CosineSimilarity(nil, nil) != 0 {
		t.Error("expected 0 for empty vectors")
	}
	if CosineSimilarity([]float32{0, 0}, []float32{1, 1}) != 0 {
		t.Error("expected 0 for zero vector")
	}
}

func TestHashEmbedderNormalizedAndDeterministic(t *testing.T) {
	e := NewHashEmbedder(0)
	if e.Dimension() != DefaultDimension {
		t.Errorf("expected default dimension, got %d", e.Dimension())
	}
	a, _ := e.Embed("Morning habits for productivity")
	b, _ := e.Embed("morning HABITS for productivity!")

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 0.0001 {
		t.Errorf("expected unit vector, got norm %f", norm)
	}
	if CosineSimilarity(a, b) < 0.9999 {
		t.Error("expected case and punctuation to be ignored")
	}

	empty, _ := e.Embed("a an of")
	for _, v := range empty {
		if v != 0 {
			t.Fatal("expected zero vector for text without tokens")
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("The 10 BEST tips for you, and why!")
	want := []string{"best", "tips"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestRelatedExcludesTargetAndRanksTopically(t *testing.T) {
	items := []models.ContentItem{
		{ID: "pasta", Title: "Lemon pasta recipe", Tags: []string{"recipe", "pasta"}},
		{ID: "prep", Title: "Meal prep recipe guide", Tags: []string{"recipe", "meal prep"}},
		{ID: "code", Title: "Learn python coding", Tags: []string{"python", "coding"}},
	}

	results, err := Related(NewHashEmbedder(0), items, items[0], 5)
	if err != nil {
		t.Fatalf("Related error: %v", err)
	}
	if len(results) == 0 || results[0].Item.ID != "prep" {
		t.Fatalf("expected prep to rank first, got %+v", results)
	}
	for _, r := range results {
		if r.Item.ID == "pasta" {
			t.Error("target should be excluded")
		}
	}
}

func TestRankFixtureCatalog(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	results, err := Rank(NewHashEmbedder(0), cat.All(), "python coding tutorial", 3)
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}
	if len(results) == 0 || results[0].Item.ID != "9" {
		t.Errorf("expected the python explainer first, got %+v", results)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Error("results not sorted by score")
		}
	}
}

func TestEmbedderErrorsPropagate(t *testing.T) {
	if _, err := Rank(failingEmbedder{}, []models.ContentItem{{ID: "a"}}, "q", 1); err == nil {
		t.Error("expected embedder error")
	}
	if _, err := Related(failingEmbedder{}, nil, models.ContentItem{}, 1); err == nil {
		t.Error("expected embedder error")
	}
}
