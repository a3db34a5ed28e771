package rules

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const singleRule = `[{"name":"only","predicate":{"type":"fieldExists","field":"age"},"failHeadline":"needsReview","chip":"Age missing"}]`

const twoRules = `[
{"name":"first","predicate":{"type":"fieldExists","field":"age"},"failHeadline":"needsReview","chip":"Age missing"},
{"name":"second","predicate":{"type":"fieldExists","field":"stage"},"failHeadline":"needsReview","chip":"Stage missing"},
{"name":"broken","predicate":{"type":"fieldExists"},"failHeadline":"needsReview","chip":"x"}
]`

func TestSourceWithoutPathServesDefaults(t *testing.T) {
	source := NewSource("", time.Minute, nil)
	if len(source.Rules()) != len(Defaults()) {
		t.Fatalf("expected built-in rules")
	}
}

func TestSourceReloadsChangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(singleRule), 0o644); err != nil {
		t.Fatal(err)
	}

	core, observed := observer.New(zapcore.WarnLevel)
	source := NewSource(path, time.Minute, zap.New(core))

	if got := len(source.Rules()); got != 1 {
		t.Fatalf("expected 1 rule, got %d", got)
	}
	if got := len(source.Rules()); got != 1 {
		t.Fatalf("expected cached rule set, got %d rules", got)
	}

	if err := os.WriteFile(path, []byte(twoRules), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := len(source.Rules()); got != 2 {
		t.Fatalf("expected reloaded rule set with 2 rules, got %d", got)
	}

	entries := observed.FilterMessage("skipping malformed rule").All()
	if len(entries) != 1 {
		t.Fatalf("expected one skipped rule warning, got %d", len(entries))
	}
	if entries[0].ContextMap()["rule"] != "broken" {
		t.Fatalf("unexpected warning fields: %v", entries[0].ContextMap())
	}
}

func TestSourceFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "rules.json")
	if err := os.WriteFile(broken, []byte(`{"rules": "nope"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{broken, filepath.Join(dir, "missing.json")} {
		core, observed := observer.New(zapcore.WarnLevel)
		source := NewSource(path, 0, zap.New(core))

		if got := len(source.Rules()); got != len(Defaults()) {
			t.Fatalf("%s: expected defaults, got %d rules", path, got)
		}
		if observed.Len() != 1 {
			t.Fatalf("%s: expected one warning, got %d", path, observed.Len())
		}
	}
}
