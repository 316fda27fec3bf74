package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1234.5678v1</id>
    <title> Attention Is All You Need </title>
    <summary>
      The dominant sequence transduction models.
    </summary>
  </entry>
</feed>`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_query"); got != "all:transformers" {
			t.Errorf("unexpected search_query: %q", got)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	out, err := Search{BaseURL: srv.URL}.Search(context.Background(), "transformers", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].Title != "Attention Is All You Need" {
		t.Errorf("title must be trimmed, got %q", out[0].Title)
	}
	if out[0].URL != "http://arxiv.org/abs/1234.5678v1" {
		t.Errorf("unexpected URL: %q", out[0].URL)
	}
	if out[0].Source != "arxiv" {
		t.Errorf("unexpected source: %q", out[0].Source)
	}
}

func TestSearch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := (Search{BaseURL: srv.URL}).Search(context.Background(), "q", 1); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
