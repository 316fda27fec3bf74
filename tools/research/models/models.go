package models

// Evidence is one retrieved passage supporting a research answer.
type Evidence struct {
	Source  string `json:"source"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
