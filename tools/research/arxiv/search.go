package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/prepmate/prepmate/tools/research/models"
)

const defaultBaseURL = "http://export.arxiv.org/api/query"

type Search struct {
	BaseURL string // overridable for tests
}

type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
}

func (s Search) Search(ctx context.Context, q string, k int) ([]models.Evidence, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	// https://info.arxiv.org/help/api/user-manual.html
	endpoint := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d", base, url.QueryEscape(q), k)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv API returned status: %d", resp.StatusCode)
	}
	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, err
	}
	var out []models.Evidence
	for i, e := range f.Entries {
		if i >= k {
			break
		}
		out = append(out, models.Evidence{
			Source:  "arxiv",
			Title:   strings.TrimSpace(e.Title),
			URL:     strings.TrimSpace(e.ID),
			Snippet: strings.TrimSpace(e.Summary),
		})
	}
	return out, nil
}
