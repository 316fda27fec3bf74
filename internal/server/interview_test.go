package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/prepmate/prepmate/config"
	"github.com/prepmate/prepmate/internal/coach"
	"github.com/prepmate/prepmate/models"
	"github.com/prepmate/prepmate/session"
	"github.com/prepmate/prepmate/tools/vectorstore"
)

type fakeProvider struct {
	reply string
	err   error
}

func (f *fakeProvider) Complete(_ context.Context, _, _ string) (string, error) {
	return f.reply, f.err
}

func (f *fakeProvider) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func newTestHandler(t *testing.T, sess *session.Session, prov *fakeProvider) *InterviewHandler {
	t.Helper()
	cfg := config.InterviewConfig{ChunkSize: 800, ChunkOverlap: 150, CVTopK: 3, JDTopK: 2, HistoryWindow: 3, ScoreWindow: 20}
	return &InterviewHandler{
		Coach:     coach.New(sess, prov, cfg, log.New(io.Discard, "", 0)),
		Session:   sess,
		UploadDir: t.TempDir(),
	}
}

func analyzedSession(t *testing.T) *session.Session {
	t.Helper()
	sess := session.New("", nil)
	cv, err := vectorstore.New(models.SourceCV,
		[]models.TextChunk{{Content: "cv chunk", Source: models.SourceCV}}, [][]float32{{1, 0}})
	if err != nil {
		t.Fatalf("cv store: %v", err)
	}
	jd, err := vectorstore.New(models.SourceJD,
		[]models.TextChunk{{Content: "jd chunk", Source: models.SourceJD}}, [][]float32{{0, 1}})
	if err != nil {
		t.Fatalf("jd store: %v", err)
	}
	sess.Commit(cv, jd)
	return sess
}

func TestReset(t *testing.T) {
	e := echo.New()
	sess := analyzedSession(t)
	h := newTestHandler(t, sess, &fakeProvider{reply: "q"})

	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	rec := httptest.NewRecorder()
	if err := h.reset(e.NewContext(req, rec)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp resetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Session reset" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
	if sess.Ready() {
		t.Error("session should be cleared after reset")
	}
}

func TestNext_BeforeAnalyze(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, session.New("", nil), &fakeProvider{reply: "q"})

	req := httptest.NewRequest(http.MethodPost, "/chat/next", strings.NewReader(`{"user_answer":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.next(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestNext_Success(t *testing.T) {
	e := echo.New()
	sess := analyzedSession(t)
	h := newTestHandler(t, sess, &fakeProvider{reply: "Tell me about your payments work."})

	req := httptest.NewRequest(http.MethodPost, "/chat/next", strings.NewReader(`{"user_answer":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.next(e.NewContext(req, rec)); err != nil {
		t.Fatalf("next: %v", err)
	}
	var resp chatNextResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Question == "" || resp.HistoryLength != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestScore_BeforeAnyAnswer(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, analyzedSession(t), &fakeProvider{reply: "{}"})

	req := httptest.NewRequest(http.MethodPost, "/chat/score", nil)
	rec := httptest.NewRecorder()

	err := h.score(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestScore_MalformedModelOutput(t *testing.T) {
	e := echo.New()
	sess := analyzedSession(t)
	sess.Append("q1")
	sess.AnswerLast("a1")
	h := newTestHandler(t, sess, &fakeProvider{reply: "garbage"})

	req := httptest.NewRequest(http.MethodPost, "/chat/score", nil)
	rec := httptest.NewRecorder()

	err := h.score(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestScore_Success(t *testing.T) {
	e := echo.New()
	sess := analyzedSession(t)
	sess.Append("q1")
	sess.AnswerLast("a1")
	h := newTestHandler(t, sess, &fakeProvider{reply: `{"score": 8, "feedback": "good depth"}`})

	req := httptest.NewRequest(http.MethodPost, "/chat/score", nil)
	rec := httptest.NewRecorder()

	if err := h.score(e.NewContext(req, rec)); err != nil {
		t.Fatalf("score: %v", err)
	}
	var resp chatScoreResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Score != 8 || resp.Feedback != "good depth" || resp.Entries != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func multipartResume(t *testing.T, contentType, jd string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{`form-data; name="resume"; filename="resume.bin"`}
	hdr["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte("dummy bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.WriteField("job_description", jd); err != nil {
		t.Fatalf("write field: %v", err)
	}
	w.Close()
	return body, w.FormDataContentType()
}

func TestAnalyze_UnsupportedType(t *testing.T) {
	e := echo.New()
	sess := analyzedSession(t)
	h := newTestHandler(t, sess, &fakeProvider{reply: "q"})

	body, ctype := multipartResume(t, "text/plain", "some jd")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()

	err := h.analyze(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if !sess.Ready() {
		t.Error("failed analyze must leave prior session state intact")
	}
}

func TestAnalyze_MissingJobDescription(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t, session.New("", nil), &fakeProvider{reply: "q"})

	body, ctype := multipartResume(t, "application/pdf", "")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()

	err := h.analyze(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
