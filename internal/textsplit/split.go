package textsplit

import (
	"errors"
	"strings"

	"github.com/prepmate/prepmate/models"
)

// ErrNoExtractableText is returned when the input yields zero chunks.
var ErrNoExtractableText = errors.New("no text extracted from document")

// Splitter cuts text into fixed-size windows with overlap between
// consecutive chunks.
type Splitter struct {
	Size    int
	Overlap int
}

// Split returns the ordered chunk texts. Whitespace-only input is an error.
func (s Splitter) Split(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoExtractableText
	}
	if len(text) <= s.Size {
		return []string{text}, nil
	}
	var chunks []string
	for start := 0; start < len(text); {
		end := start + s.Size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
		start = end - s.Overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks, nil
}

// Chunks tags the split texts with their source and position.
func Chunks(texts []string, source models.SourceTag) []models.TextChunk {
	out := make([]models.TextChunk, len(texts))
	for i, t := range texts {
		out[i] = models.TextChunk{Content: t, Source: source, Index: i}
	}
	return out
}
