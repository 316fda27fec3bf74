package server

// Request/response shapes for the interview endpoints.

type resetResponse struct {
	Message string `json:"message"`
}

type analyzeResponse struct {
	Message               string `json:"message"`
	Filename              string `json:"filename"`
	Chunks                int    `json:"chunks"`
	EmbeddingDimension    int    `json:"embedding_dimension"`
	SampleChunk           string `json:"sample_chunk"`
	JobDescriptionChunks  int    `json:"job_description_chunks"`
	JobDescriptionSample  string `json:"job_description_sample"`
	JobDescriptionPreview string `json:"job_description_preview"`
}

type chatNextRequest struct {
	UserAnswer string `json:"user_answer"`
}

type chatNextResponse struct {
	Question      string `json:"question"`
	HistoryLength int    `json:"history_length"`
}

type chatScoreResponse struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Entries  int    `json:"entries"`
}

type researchRequest struct {
	Query string `json:"query" validate:"required"`
}

type researchResponse struct {
	Response string `json:"response"`
}
