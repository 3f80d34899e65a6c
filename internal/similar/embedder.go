// ABOUTME: Embedding interface and a dependency-free hashed bag-of-words implementation.
// ABOUTME: Vectors are L2-normalized so cosine similarity reduces to a dot product.
package similar

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Embedder generates vector embeddings from text.
type Embedder interface {
	// Embed returns a vector embedding for the given text.
	Embed(text string) ([]float32, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int
}

// DefaultDimension is the vector size used by NewHashEmbedder(0).
const DefaultDimension = 256

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "you": true, "your": true, "with": true,
	"that": true, "this": true, "from": true, "what": true, "how": true, "why": true,
	"one": true, "are": true, "can": true, "most": true, "every": true, "into": true,
}

// HashEmbedder hashes lowercase word tokens into a fixed number of buckets.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates an embedder with dim buckets. dim <= 0 uses DefaultDimension.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashEmbedder{dim: dim}
}

// Dimension returns the vector size.
func (e *HashEmbedder) Dimension() int {
	return e.dim
}

// Embed returns the normalized term-frequency vector of text.
func (e *HashEmbedder) Embed(text string) ([]float32, error) {
	vec := make([]float32, e.dim)
	for _, tok := range Tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%uint32(e.dim)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

// Tokenize lowercases text and splits it into words of three or more letters or digits,
// dropping common stopwords.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 3 || stopwords[f] {
			continue
		}
		out = append(out, f)
	}
	return out
}
