package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/prepmate/prepmate/tools/research/models"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

var tagRe = regexp.MustCompile(`<[^>]+>`)

type Search struct {
	BaseURL string // overridable for tests
}

func (s Search) Search(ctx context.Context, q string, k int) ([]models.Evidence, error) {
	base := s.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	// https://www.mediawiki.org/wiki/API:Search
	endpoint := fmt.Sprintf("%s?action=query&list=search&format=json&srlimit=%d&srsearch=%s", base, k, url.QueryEscape(q))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia API returned status: %d", resp.StatusCode)
	}
	var raw struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	var out []models.Evidence
	for i, r := range raw.Query.Search {
		if i >= k {
			break
		}
		out = append(out, models.Evidence{
			Source:  "wikipedia",
			Title:   r.Title,
			URL:     "https://en.wikipedia.org/wiki/" + url.PathEscape(r.Title),
			Snippet: tagRe.ReplaceAllString(r.Snippet, ""),
		})
	}
	return out, nil
}
