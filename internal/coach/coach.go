package coach

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/prepmate/prepmate/config"
	"github.com/prepmate/prepmate/internal/ingest"
	"github.com/prepmate/prepmate/internal/textsplit"
	"github.com/prepmate/prepmate/models"
	"github.com/prepmate/prepmate/provider"
	"github.com/prepmate/prepmate/session"
	"github.com/prepmate/prepmate/tools/embedding"
	"github.com/prepmate/prepmate/tools/vectorstore"
)

// ErrGenerationFailure wraps any retrieval or model failure while
// producing the next question.
var ErrGenerationFailure = errors.New("failed to generate next question")

// Coach drives the interview: ingestion, per-turn retrieval and question
// generation, and final scoring, all against one session.
type Coach struct {
	sess     *session.Session
	provider provider.Provider
	embedder *embedding.Embedding
	splitter textsplit.Splitter
	cfg      config.InterviewConfig
	logger   *log.Logger
}

func New(sess *session.Session, prov provider.Provider, cfg config.InterviewConfig, logger *log.Logger) *Coach {
	if logger == nil {
		logger = log.New(log.Writer(), "[COACH] ", log.LstdFlags)
	}
	return &Coach{
		sess:     sess,
		provider: prov,
		embedder: embedding.NewEmbedding(prov),
		splitter: textsplit.Splitter{Size: cfg.ChunkSize, Overlap: cfg.ChunkOverlap},
		cfg:      cfg,
		logger:   logger,
	}
}

// AnalyzeResult summarizes a successful ingestion.
type AnalyzeResult struct {
	CVChunks           int
	EmbeddingDimension int
	SampleChunk        string
	JDChunks           int
	JDSample           string
}

// Analyze extracts the resume, chunks and embeds both documents, and
// commits two fresh stores. Everything is built before the session is
// touched, so a failure anywhere leaves prior state intact.
func (c *Coach) Analyze(ctx context.Context, filePath, contentType, jobDescription string) (AnalyzeResult, error) {
	text, err := ingest.ExtractText(filePath, contentType)
	if err != nil {
		return AnalyzeResult{}, err
	}

	cvStore, cvChunks, dim, err := c.buildStore(ctx, text, models.SourceCV)
	if err != nil {
		return AnalyzeResult{}, err
	}
	jdStore, jdChunks, _, err := c.buildStore(ctx, jobDescription, models.SourceJD)
	if err != nil {
		return AnalyzeResult{}, err
	}

	c.sess.Commit(cvStore, jdStore)
	c.logger.Printf("analyzed resume: %d cv chunks, %d jd chunks, dim %d", len(cvChunks), len(jdChunks), dim)

	return AnalyzeResult{
		CVChunks:           len(cvChunks),
		EmbeddingDimension: dim,
		SampleChunk:        truncate(cvChunks[0], 300),
		JDChunks:           len(jdChunks),
		JDSample:           truncate(jdChunks[0], 200),
	}, nil
}

func (c *Coach) buildStore(ctx context.Context, text string, source models.SourceTag) (*vectorstore.Store, []string, int, error) {
	chunks, err := c.splitter.Split(text)
	if err != nil {
		return nil, nil, 0, err
	}
	vecs, err := c.embedder.EmbedMany(ctx, chunks)
	if err != nil {
		return nil, nil, 0, err
	}
	store, err := vectorstore.New(source, textsplit.Chunks(chunks, source), vecs)
	if err != nil {
		return nil, nil, 0, err
	}
	return store, chunks, store.Dimension(), nil
}

// Next records the previous answer, retrieves context from both stores,
// asks the model for the next question, and appends it to the transcript.
// The append only happens after a successful model call.
func (c *Coach) Next(ctx context.Context, userAnswer string) (string, int, error) {
	cv, jd, err := c.sess.Stores()
	if err != nil {
		return "", 0, err
	}

	c.sess.AnswerLast(userAnswer)

	query := userAnswer
	if query == "" {
		query = fallbackQuery
	}
	queryVec, err := c.embedder.EmbedOne(ctx, query)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}

	contextChunks := append(cv.Search(queryVec, c.cfg.CVTopK), jd.Search(queryVec, c.cfg.JDTopK)...)
	history := c.sess.History(c.cfg.HistoryWindow)

	systemPrompt := buildInterviewPrompt(contextChunks, history, userAnswer)
	question, err := c.provider.Complete(ctx, systemPrompt, interviewUserPrompt)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}

	c.sess.Append(question)
	return question, c.sess.Len(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
