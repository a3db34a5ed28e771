package candidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNotFound = errors.New("candidate not found")

// Store is the on-disk list of candidates.
type Store struct {
	Candidates []*Candidate `json:"candidates"`
}

// Load reads the store from path. A missing or empty file yields an empty store.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Store{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Store{}, nil
	}

	var store Store
	if err := json.NewDecoder(file).Decode(&store); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	// null entries carry nothing to evaluate
	kept := store.Candidates[:0]
	for _, c := range store.Candidates {
		if c != nil {
			kept = append(kept, c)
		}
	}
	store.Candidates = kept

	return &store, nil
}

// Save replaces the file at path atomically: the store is written to a
// temporary file in the same directory and renamed over the target.
func (s *Store) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func (s *Store) Len() int {
	return len(s.Candidates)
}

func (s *Store) FindByID(id string) (*Candidate, error) {
	for _, c := range s.Candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.Candidates))
	for _, c := range s.Candidates {
		ids = append(ids, c.ID)
	}
	return ids
}

// SetStage moves the candidate with the given id to stage.
func (s *Store) SetStage(id string, stage Stage) error {
	c, err := s.FindByID(id)
	if err != nil {
		return err
	}
	c.Stage = stage
	return nil
}
