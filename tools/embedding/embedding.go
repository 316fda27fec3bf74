package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/prepmate/prepmate/provider"
)

// ErrEmbeddingFailure wraps any failure of the embedding provider. Chunks
// are never silently dropped; the whole batch fails together.
var ErrEmbeddingFailure = errors.New("embedding request failed")

type Embedding struct {
	provider provider.Provider
}

func NewEmbedding(provider provider.Provider) *Embedding {
	return &Embedding{
		provider: provider,
	}
}

// EmbedMany returns one vector per text, order preserved 1:1.
func (e Embedding) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vecs, err := e.provider.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailure, err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d texts", ErrEmbeddingFailure, len(vecs), len(texts))
	}

	return vecs, nil
}

// EmbedOne embeds a single query string.
func (e Embedding) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}
