package coach

import (
	"fmt"
	"strings"

	"github.com/prepmate/prepmate/models"
)

const interviewSystemPrompt = `You are an interview coach. Use the provided context (candidate CV + job description) to ask targeted interview questions.
Prioritize projects, responsibilities, and skills that align with the job description. Keep each turn concise: one question at a time.
If the user's last answer is provided, briefly critique correctness and clarity, then ask the next question.`

const interviewUserPrompt = `Generate the next interview question. If the user's last answer is non-empty, first give a brief critique (2-3 sentences), then the next question.`

const scoreSystemPrompt = `You are an interview evaluator. Read the following short transcript of interview
questions and answers. Provide a JSON object with keys:
- score: integer 1-10 reflecting how strong the candidate is
- feedback: concise (<=60 words) guidance on improvement.
Return ONLY valid JSON.`

// fallbackQuery seeds retrieval when there is no answer to anchor on.
const fallbackQuery = "generate interview question"

const noAnswerMarker = "(no answer)"

// buildInterviewPrompt assembles the system prompt for one turn: persona,
// retrieved context, a short history window, and the latest answer.
func buildInterviewPrompt(contextChunks []models.TextChunk, history []models.Turn, userAnswer string) string {
	var ctxParts []string
	for _, ch := range contextChunks {
		ctxParts = append(ctxParts, fmt.Sprintf("[%s] %s", ch.Source, ch.Content))
	}

	var histLines []string
	for _, t := range history {
		answer := t.Answer
		if answer == "" {
			answer = noAnswerMarker
		}
		histLines = append(histLines, fmt.Sprintf("Q: %s\nA: %s", t.Question, answer))
	}

	return fmt.Sprintf("%s\n\nContext you can use:\n%s\n\nShort chat history (Q/A):\n%s\n\nUser's last answer (if any): %s",
		interviewSystemPrompt,
		strings.Join(ctxParts, "\n\n"),
		strings.Join(histLines, "\n"),
		userAnswer,
	)
}

// formatTranscript renders completed turns as Question/Answer blocks for
// the evaluator.
func formatTranscript(turns []models.Turn) string {
	blocks := make([]string, 0, len(turns))
	for _, t := range turns {
		answer := strings.TrimSpace(t.Answer)
		if answer == "" {
			answer = noAnswerMarker
		}
		blocks = append(blocks, fmt.Sprintf("Question: %s\nAnswer: %s", strings.TrimSpace(t.Question), answer))
	}
	return strings.Join(blocks, "\n\n")
}

func buildScorePrompt(transcript string) string {
	return fmt.Sprintf("Conversation transcript:\n%s\n\nRespond with JSON now.", transcript)
}

// cleanJSONBlock removes markdown code block wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when told not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}
	return text
}
