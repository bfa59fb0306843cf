package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mrhapile/stateforge/pkg/ternary"
)

func writeKB(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kb.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKnowledgeBase(t *testing.T) {
	path := writeKB(t, `
name: rainy-day
variables: [x1, x2, x3, x4]
rules:
  - "x1 = (x2 && x3)"
  - "x2 <= (!x3 || !x4)"
evidence:
  x4: false
`)
	kb, err := LoadKnowledgeBase(path)
	if err != nil {
		t.Fatalf("LoadKnowledgeBase failed: %v", err)
	}
	if kb.Name != "rainy-day" {
		t.Errorf("unexpected name: %s", kb.Name)
	}
	if len(kb.Variables) != 4 || len(kb.Rules) != 2 {
		t.Fatalf("unexpected parsed sizes: %+v", kb)
	}
	if v, ok := kb.Evidence["x4"]; !ok || v != false {
		t.Fatalf("expected x4=false evidence, got %+v", kb.Evidence)
	}
}

func TestLoadKnowledgeBaseMissingFile(t *testing.T) {
	_, err := LoadKnowledgeBase(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing knowledge base file")
	}
}

func TestBuildEngineAddsRulesAndEvidence(t *testing.T) {
	kb := KnowledgeBase{
		Variables: []string{"x1", "x2", "x3", "x4"},
		Rules:     []string{"x1 = (x2 && x3)", "x2 <= (!x3 || !x4)"},
		Evidence:  map[string]bool{"x4": false},
	}
	e, err := kb.BuildEngine(false)
	if err != nil {
		t.Fatalf("BuildEngine failed: %v", err)
	}
	e.Compile()
	v, err := e.GetVariableValue("x1")
	if err != nil {
		t.Fatal(err)
	}
	if v != ternary.X {
		t.Fatalf("expected x1=X, got %v", v)
	}
}

func TestBuildEngineRejectsBadRule(t *testing.T) {
	kb := KnowledgeBase{
		Variables: []string{"x1"},
		Rules:     []string{"x2"},
	}
	if _, err := kb.BuildEngine(false); err == nil {
		t.Fatal("expected error for rule referencing undeclared variable")
	}
}
