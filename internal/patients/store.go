package patients

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Store is a JSON-file-backed patient registry keyed by patient ID. Every
// write rewrites the whole file; the dataset is tutorial sized.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() (map[string]Patient, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]Patient{}, nil
		}
		return nil, fmt.Errorf("failed to read patient data: %w", err)
	}
	records := map[string]Patient{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse patient data: %w", err)
	}
	return records, nil
}

func (s *Store) save(records map[string]Patient) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// List returns all patients ordered by ID.
func (s *Store) List() ([]Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]Patient, 0, len(records))
	for _, p := range records {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Get(id string) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return Patient{}, err
	}
	p, ok := records[id]
	if !ok {
		return Patient{}, ErrPatientNotFound
	}
	return p, nil
}

// Create adds a new record, computing the derived fields.
func (s *Store) Create(p Patient) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return Patient{}, err
	}
	if _, ok := records[p.ID]; ok {
		return Patient{}, ErrPatientExists
	}
	p.ComputeDerived()
	records[p.ID] = p
	if err := s.save(records); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Apply performs a partial update and recomputes the derived fields.
func (s *Store) Apply(id string, u Update) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return Patient{}, err
	}
	p, ok := records[id]
	if !ok {
		return Patient{}, ErrPatientNotFound
	}
	p.apply(u)
	records[id] = p
	if err := s.save(records); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := records[id]; !ok {
		return ErrPatientNotFound
	}
	delete(records, id)
	return s.save(records)
}

// SortFields lists the accepted sort keys for Sorted.
var SortFields = map[string]func(Patient) float64{
	"height": func(p Patient) float64 { return p.Height },
	"weight": func(p Patient) float64 { return p.Weight },
	"bmi":    func(p Patient) float64 { return p.BMI },
}

// Sorted returns all patients ordered by the given numeric field.
func (s *Store) Sorted(field, order string) ([]Patient, error) {
	key, ok := SortFields[field]
	if !ok {
		return nil, fmt.Errorf("invalid sort field, select from height, weight or bmi")
	}
	if order != "asc" && order != "desc" {
		return nil, fmt.Errorf("invalid order, select between asc and desc")
	}
	out, err := s.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == "desc" {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out, nil
}
