package research

import (
	"context"

	"github.com/prepmate/prepmate/tools/research/arxiv"
	"github.com/prepmate/prepmate/tools/research/models"
	"github.com/prepmate/prepmate/tools/research/wikipedia"
)

// Searcher gathers evidence passages for a query from one source.
type Searcher interface {
	Search(ctx context.Context, q string, k int) ([]models.Evidence, error)
}

type Provider string

const (
	WikipediaProvider Provider = "wikipedia"
	ArxivProvider     Provider = "arxiv"
)

type Error struct{ msg string }

func (e *Error) Error() string { return e.msg }

var ErrUnsupportedProvider = &Error{"unsupported research provider"}

func NewSearcher(provider Provider) (Searcher, error) {
	switch provider {
	case WikipediaProvider:
		return wikipedia.Search{}, nil
	case ArxivProvider:
		return arxiv.Search{}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
