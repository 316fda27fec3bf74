package textsplit

import (
	"errors"
	"strings"
	"testing"

	"github.com/prepmate/prepmate/models"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := Splitter{Size: 800, Overlap: 150}
	chunks, err := s.Split(strings.Repeat("a", 500))
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for text under the chunk size, got %d", len(chunks))
	}
}

func TestSplit_LongTextOverlaps(t *testing.T) {
	s := Splitter{Size: 800, Overlap: 150}
	text := strings.Repeat("b", 2000)
	chunks, err := s.Split(text)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks for 2000 chars, got %d", len(chunks))
	}
	if len(chunks[0]) != 800 {
		t.Errorf("expected first chunk of 800 chars, got %d", len(chunks[0]))
	}
	// consecutive chunks share the overlap region
	tail := chunks[0][800-150:]
	head := chunks[1][:150]
	if tail != head {
		t.Error("expected 150 chars of overlap between consecutive chunks")
	}
}

func TestSplit_ExactBoundaries(t *testing.T) {
	s := Splitter{Size: 4, Overlap: 2}
	chunks, err := s.Split("abcdefghij")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if chunks[0] != "abcd" {
		t.Errorf("unexpected first chunk: %s", chunks[0])
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix("abcdefghij", last) {
		t.Errorf("last chunk %q is not a suffix of the input", last)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	s := Splitter{Size: 800, Overlap: 150}
	for _, in := range []string{"", "   ", "\n\t "} {
		if _, err := s.Split(in); !errors.Is(err, ErrNoExtractableText) {
			t.Errorf("expected ErrNoExtractableText for %q, got %v", in, err)
		}
	}
}

func TestChunks_TagsSourceAndIndex(t *testing.T) {
	out := Chunks([]string{"one", "two"}, models.SourceJD)
	if len(out) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(out))
	}
	if out[1].Source != models.SourceJD || out[1].Index != 1 || out[1].Content != "two" {
		t.Errorf("unexpected chunk: %+v", out[1])
	}
}
