package models

// SourceTag identifies which document a chunk was cut from.
type SourceTag string

const (
	SourceCV SourceTag = "CV"
	SourceJD SourceTag = "JD"
)

// TextChunk is one slice of an ingested document. Immutable once built;
// owned by the vector store holding it.
type TextChunk struct {
	Content string    `json:"content"`
	Source  SourceTag `json:"source"`
	Index   int       `json:"index"`
}

// Turn is a single question/answer exchange. Answer starts empty and is
// filled in exactly once, when the next turn request carries the reply.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answered reports whether the candidate replied to this turn.
func (t Turn) Answered() bool { return t.Answer != "" }

// ScoreResult is the evaluator's verdict over a completed transcript.
// Score is always inside [1,10] by the time it leaves the scorer.
type ScoreResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
