package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/prepmate/prepmate/models"
	"github.com/prepmate/prepmate/session"
)

// ErrInsufficientData is returned when no turn has been answered yet.
var ErrInsufficientData = errors.New("complete at least one Q/A before scoring")

// ErrScoreMissing is returned when the evaluator's JSON has no score key.
var ErrScoreMissing = errors.New("score missing from model response")

// ErrScoreNotNumeric is returned when the score key is not a number.
var ErrScoreNotNumeric = errors.New("score must be numeric")

// InvalidScoringResponseError carries the raw model output that failed to
// parse as JSON, for diagnostics.
type InvalidScoringResponseError struct {
	Raw string
}

func (e *InvalidScoringResponseError) Error() string {
	return fmt.Sprintf("scoring model returned invalid JSON: %s", e.Raw)
}

// Score evaluates the completed turns of the transcript. The returned
// score is rounded half away from zero, then clamped into [1,10].
func (c *Coach) Score(ctx context.Context) (models.ScoreResult, int, error) {
	if !c.sess.Ready() {
		return models.ScoreResult{}, 0, session.ErrSessionNotReady
	}

	completed := c.sess.Completed()
	if len(completed) == 0 {
		return models.ScoreResult{}, 0, ErrInsufficientData
	}
	if c.cfg.ScoreWindow > 0 && len(completed) > c.cfg.ScoreWindow {
		completed = completed[len(completed)-c.cfg.ScoreWindow:]
	}

	userPrompt := buildScorePrompt(formatTranscript(completed))
	raw, err := c.provider.Complete(ctx, scoreSystemPrompt, userPrompt)
	if err != nil {
		return models.ScoreResult{}, 0, fmt.Errorf("%w: %v", ErrGenerationFailure, err)
	}

	result, err := parseScore(raw)
	if err != nil {
		return models.ScoreResult{}, 0, err
	}
	return result, c.sess.Len(), nil
}

// parseScore is the parse-then-validate step over the evaluator's output.
func parseScore(raw string) (models.ScoreResult, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleanJSONBlock(raw)), &payload); err != nil {
		return models.ScoreResult{}, &InvalidScoringResponseError{Raw: raw}
	}

	scoreVal, ok := payload["score"]
	if !ok || scoreVal == nil {
		return models.ScoreResult{}, ErrScoreMissing
	}

	var score float64
	switch v := scoreVal.(type) {
	case float64:
		score = v
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.ScoreResult{}, ErrScoreNotNumeric
		}
		score = parsed
	default:
		return models.ScoreResult{}, ErrScoreNotNumeric
	}

	clamped := int(math.Round(score))
	if clamped < 1 {
		clamped = 1
	}
	if clamped > 10 {
		clamped = 10
	}

	feedback := ""
	if fb, ok := payload["feedback"].(string); ok {
		feedback = fb
	}

	return models.ScoreResult{Score: clamped, Feedback: feedback}, nil
}
