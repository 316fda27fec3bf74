package vectorstore

import (
	"fmt"
	"math"
	"sort"

	"github.com/prepmate/prepmate/models"
)

// Store is a read-only nearest-neighbour index over the chunks of one
// document. Built once per ingestion and replaced wholesale, never patched.
type Store struct {
	source models.SourceTag
	chunks []models.TextChunk
	vecs   [][]float32
}

// New builds a store from parallel chunk and vector slices.
func New(source models.SourceTag, chunks []models.TextChunk, vecs [][]float32) (*Store, error) {
	if len(chunks) != len(vecs) {
		return nil, fmt.Errorf("chunk/vector length mismatch: %d vs %d", len(chunks), len(vecs))
	}
	cs := make([]models.TextChunk, len(chunks))
	copy(cs, chunks)
	vs := make([][]float32, len(vecs))
	copy(vs, vecs)
	return &Store{source: source, chunks: cs, vecs: vs}, nil
}

// Source returns the tag the store was built with.
func (s *Store) Source() models.SourceTag { return s.source }

// Len returns the number of indexed chunks.
func (s *Store) Len() int { return len(s.chunks) }

// Dimension returns the embedding width, 0 for an empty store.
func (s *Store) Dimension() int {
	if len(s.vecs) == 0 {
		return 0
	}
	return len(s.vecs[0])
}

// Search returns up to k chunks ordered by decreasing cosine similarity
// to the query vector. Fewer than k indexed chunks returns all of them.
func (s *Store) Search(query []float32, k int) []models.TextChunk {
	type scored struct {
		idx   int
		score float64
	}
	scoreds := make([]scored, len(s.vecs))
	for i, v := range s.vecs {
		scoreds[i] = scored{idx: i, score: cosine(query, v)}
	}
	sort.SliceStable(scoreds, func(i, j int) bool { return scoreds[i].score > scoreds[j].score })
	if k > len(scoreds) {
		k = len(scoreds)
	}
	out := make([]models.TextChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, s.chunks[scoreds[i].idx])
	}
	return out
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ai := float64(a[i])
		bi := float64(b[i])
		dot += ai * bi
		na += ai * ai
		nb += bi * bi
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Snapshot exposes the raw chunk/vector pairs for persistence.
func (s *Store) Snapshot() ([]models.TextChunk, [][]float32) {
	return s.chunks, s.vecs
}
