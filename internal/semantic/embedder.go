package semantic

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Embedder turns text into a dense vector. Implementations must return
// vectors of a consistent dimension for the lifetime of the instance.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	// Ready reports whether the backing provider is reachable. Used by the
	// server health check.
	Ready(ctx context.Context) error
	Close() error
}

// Cosine computes the cosine similarity of two vectors. Mismatched or
// zero-norm vectors yield 0. The result is not clamped; well-formed unit
// vectors stay within [-1,1] on their own.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// l2Normalize scales a vector to unit length in place. Zero vectors are left
// untouched.
func l2Normalize(vec []float64) {
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
}

const staticEmbedderDim = 256

// StaticEmbedder is a deterministic, offline embedder: tokens are hashed into
// a fixed-size bag-of-words vector. Similarity quality is far below a learned
// model, but overlapping texts still score higher than disjoint ones, which
// is enough for air-gapped deployments and tests.
type StaticEmbedder struct{}

// NewStaticEmbedder creates the offline embedder.
func NewStaticEmbedder() *StaticEmbedder {
	return &StaticEmbedder{}
}

// Embed hashes each lowercased token into one of the vector's buckets.
func (s *StaticEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	vec := make([]float64, staticEmbedderDim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%staticEmbedderDim]++
	}
	l2Normalize(vec)
	return vec, nil
}

// Ready always succeeds; there is no remote dependency.
func (s *StaticEmbedder) Ready(_ context.Context) error {
	return nil
}

// Close implements Embedder.
func (s *StaticEmbedder) Close() error {
	return nil
}
