package candidate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadDropsNullEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")
	if err := os.WriteFile(path, []byte(`{"candidates": [null, {"id": "c1"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 1 || store.Candidates[0].ID != "c1" {
		t.Fatalf("expected only c1, got %v", store.IDs())
	}
}

func TestSaveRoundTripKeepsAbsence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")

	store := &Store{Candidates: []*Candidate{
		{ID: "c1", Name: "First", Age: Int(19), Dependents: Int(0), HeightInInches: Float(64.5), Sex: SexMale, Stage: StageProspect},
		{ID: "c2", Sex: SexFemale},
	}}

	if err := store.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("expected 2 candidates, got %d", loaded.Len())
	}

	first, err := loaded.FindByID("c1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if first.Dependents == nil || *first.Dependents != 0 {
		t.Fatalf("expected zero dependents to survive, got %v", first.Dependents)
	}
	if first.WeightInPounds != nil {
		t.Fatalf("expected weight to stay absent")
	}

	second, err := loaded.FindByID("c2")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if second.Age != nil || second.Dependents != nil {
		t.Fatalf("expected absent numbers, got %+v", second)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, got %d entries", len(entries))
	}
}

func TestSetStage(t *testing.T) {
	store := &Store{Candidates: []*Candidate{{ID: "c1", Stage: StageProspect}}}

	if err := store.SetStage("c1", StageMEPS); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Candidates[0].Stage != StageMEPS {
		t.Fatalf("expected meps, got %s", store.Candidates[0].Stage)
	}

	if err := store.SetStage("nope", StageDEP); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
