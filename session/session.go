package session

import (
	"errors"
	"log"
	"sync"

	"github.com/prepmate/prepmate/models"
	"github.com/prepmate/prepmate/tools/vectorstore"
)

// ErrSessionNotReady is returned by transcript operations before a
// successful analyze has populated the stores.
var ErrSessionNotReady = errors.New("run /analyze first to upload CV and JD")

// Snapshot is the serializable form of a session, used by persisters.
type Snapshot struct {
	ID         string             `json:"id"`
	CVChunks   []models.TextChunk `json:"cv_chunks"`
	CVVectors  [][]float32        `json:"cv_vectors"`
	JDChunks   []models.TextChunk `json:"jd_chunks"`
	JDVectors  [][]float32        `json:"jd_vectors"`
	Transcript []models.Turn      `json:"transcript"`
}

// Persister saves and restores session snapshots across restarts.
type Persister interface {
	Save(snap Snapshot) error
	Load() (Snapshot, bool, error)
}

// Session holds the one active interview: both document stores plus the
// ordered transcript. All access is serialized through a single mutex,
// one caller at a time owns the state.
type Session struct {
	mu         sync.Mutex
	id         string
	cv         *vectorstore.Store
	jd         *vectorstore.Store
	transcript []models.Turn
	persister  Persister
}

// New returns an empty session. A non-nil persister is consulted once for
// a previous snapshot and then kept in sync after every mutation.
func New(id string, persister Persister) *Session {
	s := &Session{id: id, persister: persister}
	if persister != nil {
		snap, ok, err := persister.Load()
		if err != nil {
			log.Printf("[SESSION] restore failed: %v", err)
		} else if ok {
			s.restore(snap)
		}
	}
	return s
}

func (s *Session) restore(snap Snapshot) {
	cv, err := vectorstore.New(models.SourceCV, snap.CVChunks, snap.CVVectors)
	if err != nil {
		log.Printf("[SESSION] restore discarded: %v", err)
		return
	}
	jd, err := vectorstore.New(models.SourceJD, snap.JDChunks, snap.JDVectors)
	if err != nil {
		log.Printf("[SESSION] restore discarded: %v", err)
		return
	}
	if cv.Len() == 0 || jd.Len() == 0 {
		return
	}
	s.id = snap.ID
	s.cv = cv
	s.jd = jd
	s.transcript = snap.Transcript
}

// Reset unconditionally clears both stores and the transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cv = nil
	s.jd = nil
	s.transcript = nil
	s.persist()
}

// Commit installs freshly built stores and clears the transcript. The
// caller builds everything before calling, so a failed ingestion never
// touches prior state.
func (s *Session) Commit(cv, jd *vectorstore.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cv = cv
	s.jd = jd
	s.transcript = nil
	s.persist()
}

// Ready reports whether both stores are present.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cv != nil && s.jd != nil
}

// Stores returns both stores, or ErrSessionNotReady before analyze.
func (s *Session) Stores() (cv, jd *vectorstore.Store, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cv == nil || s.jd == nil {
		return nil, nil, ErrSessionNotReady
	}
	return s.cv, s.jd, nil
}

// AnswerLast fills in the answer of the trailing turn. A no-op on an
// empty transcript or an empty answer.
func (s *Session) AnswerLast(answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.transcript) == 0 || answer == "" {
		return
	}
	s.transcript[len(s.transcript)-1].Answer = answer
	s.persist()
}

// Append records a freshly generated question with an empty answer.
func (s *Session) Append(question string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, models.Turn{Question: question})
	s.persist()
}

// Len returns the transcript length.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transcript)
}

// History returns a copy of at most the last n turns.
func (s *Session) History(n int) []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := len(s.transcript) - n
	if n <= 0 || start < 0 {
		start = 0
	}
	out := make([]models.Turn, len(s.transcript)-start)
	copy(out, s.transcript[start:])
	return out
}

// Completed returns only the turns the candidate actually answered.
func (s *Session) Completed() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Turn
	for _, t := range s.transcript {
		if t.Answered() {
			out = append(out, t)
		}
	}
	return out
}

// persist mirrors current state to the persister. Callers hold the lock.
func (s *Session) persist() {
	if s.persister == nil {
		return
	}
	snap := Snapshot{ID: s.id, Transcript: s.transcript}
	if s.cv != nil && s.jd != nil {
		snap.CVChunks, snap.CVVectors = s.cv.Snapshot()
		snap.JDChunks, snap.JDVectors = s.jd.Snapshot()
	}
	if err := s.persister.Save(snap); err != nil {
		log.Printf("[SESSION] persist failed: %v", err)
	}
}
