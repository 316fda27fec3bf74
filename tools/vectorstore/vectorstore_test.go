package vectorstore

import (
	"testing"

	"github.com/prepmate/prepmate/models"
)

func chunk(content string, i int) models.TextChunk {
	return models.TextChunk{Content: content, Source: models.SourceCV, Index: i}
}

func TestNew_LengthMismatch(t *testing.T) {
	_, err := New(models.SourceCV, []models.TextChunk{chunk("a", 0)}, nil)
	if err == nil {
		t.Fatal("expected error for chunk/vector length mismatch")
	}
}

func TestSearch_ExactMatchRanksFirst(t *testing.T) {
	chunks := []models.TextChunk{chunk("A", 0), chunk("B", 1), chunk("C", 2)}
	vecs := [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	s, err := New(models.SourceCV, chunks, vecs)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := s.Search([]float32{0, 1, 0}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Content != "B" {
		t.Errorf("expected exact match B ranked first, got %s", got[0].Content)
	}
}

func TestSearch_KLargerThanStore(t *testing.T) {
	s, err := New(models.SourceJD, []models.TextChunk{chunk("A", 0)}, [][]float32{{1, 0}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got := s.Search([]float32{1, 0}, 5)
	if len(got) != 1 {
		t.Fatalf("expected all 1 chunks when k exceeds store size, got %d", len(got))
	}
}

func TestDimension(t *testing.T) {
	s, _ := New(models.SourceCV, []models.TextChunk{chunk("A", 0)}, [][]float32{{1, 2, 3}})
	if s.Dimension() != 3 {
		t.Errorf("expected dimension 3, got %d", s.Dimension())
	}
	empty, _ := New(models.SourceCV, nil, nil)
	if empty.Dimension() != 0 {
		t.Errorf("expected dimension 0 for empty store, got %d", empty.Dimension())
	}
}

func TestCosine_Basic(t *testing.T) {
	if got := cosine([]float32{1, 0}, []float32{1, 0}); got < 0.99 {
		t.Errorf("expected cosine of identical vectors ~1, got %f", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); got > 0.01 {
		t.Errorf("expected cosine of orthogonal vectors ~0, got %f", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("expected 0 for zero vector, got %f", got)
	}
}
