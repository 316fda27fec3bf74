package research

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/prepmate/prepmate/config"
	"github.com/prepmate/prepmate/provider"
	"github.com/prepmate/prepmate/tools/research"
	resmodels "github.com/prepmate/prepmate/tools/research/models"
)

const systemPrompt = `You are a research assistant that explains academic papers in depth.
1. Only use the evidence passages supplied below; never hallucinate.
2. Synthesize them into a detailed explanation covering motivation, methodology, experiments, results, and implications. Structure the answer clearly.
3. If the evidence is empty or irrelevant, respond exactly with "I don't know."
4. Mention evidence sources inline (e.g. "(arxiv)") and note any gaps.
5. If the query is not about academic research, respond with: I can only answer questions about academic research papers.`

// Assistant answers research questions grounded in Wikipedia and arXiv
// evidence. A failed evidence lookup fails the request; it is never
// silently degraded to an empty evidence list.
type Assistant struct {
	searchers map[research.Provider]research.Searcher
	provider  provider.Provider
	cfg       config.ResearchConfig
	logger    *log.Logger
}

func NewAssistant(prov provider.Provider, cfg config.ResearchConfig, logger *log.Logger) (*Assistant, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "[RESEARCH] ", log.LstdFlags)
	}
	searchers := make(map[research.Provider]research.Searcher)
	for _, p := range []research.Provider{research.WikipediaProvider, research.ArxivProvider} {
		s, err := research.NewSearcher(p)
		if err != nil {
			return nil, err
		}
		searchers[p] = s
	}
	return &Assistant{searchers: searchers, provider: prov, cfg: cfg, logger: logger}, nil
}

// Answer gathers evidence for the query and asks the model to explain it.
func (a *Assistant) Answer(ctx context.Context, query string) (string, error) {
	var evidence []resmodels.Evidence

	wiki, err := a.searchers[research.WikipediaProvider].Search(ctx, query, a.cfg.WikipediaResults)
	if err != nil {
		return "", fmt.Errorf("wikipedia lookup failed: %w", err)
	}
	evidence = append(evidence, wiki...)

	papers, err := a.searchers[research.ArxivProvider].Search(ctx, query, a.cfg.ArxivResults)
	if err != nil {
		return "", fmt.Errorf("arxiv lookup failed: %w", err)
	}
	evidence = append(evidence, papers...)

	a.logger.Printf("gathered %d evidence passages for %q", len(evidence), query)

	var parts []string
	for _, ev := range evidence {
		parts = append(parts, fmt.Sprintf("(%s) %s\n%s\n%s", ev.Source, ev.Title, ev.URL, ev.Snippet))
	}
	userPrompt := fmt.Sprintf("Evidence:\n%s\n\nQuestion: %s", strings.Join(parts, "\n\n"), query)

	return a.provider.Complete(ctx, systemPrompt, userPrompt)
}
