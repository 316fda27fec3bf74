package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/prepmate/prepmate/internal/coach"
	"github.com/prepmate/prepmate/internal/ingest"
	"github.com/prepmate/prepmate/internal/textsplit"
	"github.com/prepmate/prepmate/session"
)

// InterviewHandler exposes the interview pipeline: reset, analyze,
// next-question and scoring.
type InterviewHandler struct {
	Coach     *coach.Coach
	Session   *session.Session
	UploadDir string
}

func (h *InterviewHandler) Register(e *echo.Echo) {
	e.POST("/reset", h.reset)
	e.POST("/analyze", h.analyze)
	e.POST("/chat/next", h.next)
	e.POST("/chat/score", h.score)
}

// reset clears all session state: CV, JD and chat history.
func (h *InterviewHandler) reset(c echo.Context) error {
	h.Session.Reset()
	return c.JSON(http.StatusOK, resetResponse{Message: "Session reset"})
}

func (h *InterviewHandler) analyze(c echo.Context) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume file required")
	}
	jobDescription := c.FormValue("job_description")
	if jobDescription == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "job_description required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	// stage the upload so the extractors can work from a path
	staged := filepath.Join(h.UploadDir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(staged)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage upload")
	}
	defer os.Remove(staged)
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage upload")
	}
	dst.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.Coach.Analyze(c.Request().Context(), staged, contentType, jobDescription)
	if err != nil {
		analyzeTotal.WithLabelValues("error").Inc()
		return interviewError(err)
	}
	analyzeTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, analyzeResponse{
		Message:               "Processed",
		Filename:              fileHeader.Filename,
		Chunks:                result.CVChunks,
		EmbeddingDimension:    result.EmbeddingDimension,
		SampleChunk:           result.SampleChunk,
		JobDescriptionChunks:  result.JDChunks,
		JobDescriptionSample:  result.JDSample,
		JobDescriptionPreview: truncate(jobDescription, 200),
	})
}

func (h *InterviewHandler) next(c echo.Context) error {
	var req chatNextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	question, historyLen, err := h.Coach.Next(c.Request().Context(), req.UserAnswer)
	modelLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		turnsTotal.WithLabelValues("error").Inc()
		return interviewError(err)
	}
	turnsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, chatNextResponse{Question: question, HistoryLength: historyLen})
}

func (h *InterviewHandler) score(c echo.Context) error {
	result, entries, err := h.Coach.Score(c.Request().Context())
	if err != nil {
		scoresTotal.WithLabelValues("error").Inc()
		return interviewError(err)
	}
	scoresTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, chatScoreResponse{
		Score:    result.Score,
		Feedback: result.Feedback,
		Entries:  entries,
	})
}

// interviewError maps the pipeline's error taxonomy onto HTTP statuses.
// Caller mistakes are 400s; upstream/model failures are 500s.
func interviewError(err error) *echo.HTTPError {
	var invalid *coach.InvalidScoringResponseError
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFileType),
		errors.Is(err, textsplit.ErrNoExtractableText),
		errors.Is(err, session.ErrSessionNotReady),
		errors.Is(err, coach.ErrInsufficientData):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &invalid),
		errors.Is(err, ingest.ErrMissingDependency),
		errors.Is(err, coach.ErrScoreMissing),
		errors.Is(err, coach.ErrScoreNotNumeric):
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
