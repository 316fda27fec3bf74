package research

import (
	"errors"
	"testing"
)

func TestNewSearcher(t *testing.T) {
	for _, p := range []Provider{WikipediaProvider, ArxivProvider} {
		s, err := NewSearcher(p)
		if err != nil || s == nil {
			t.Errorf("provider %s: expected searcher, got %v, %v", p, s, err)
		}
	}
	if _, err := NewSearcher("pubmed"); !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider, got %v", err)
	}
}
