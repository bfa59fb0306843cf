package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrhapile/stateforge/pkg/engine"
)

// KnowledgeBase is the on-disk YAML shape for variables, rules, and
// evidence — the CLI's only file format (§6: the engine itself has no
// on-disk format).
type KnowledgeBase struct {
	Name      string          `yaml:"name,omitempty"`
	Variables []string        `yaml:"variables"`
	Rules     []string        `yaml:"rules,omitempty"`
	Evidence  map[string]bool `yaml:"evidence,omitempty"`
	Verbose   bool            `yaml:"verbose,omitempty"`
}

// LoadKnowledgeBase reads and parses a knowledge-base YAML file.
func LoadKnowledgeBase(path string) (KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KnowledgeBase{}, fmt.Errorf("reading knowledge base %s: %w", path, err)
	}
	var kb KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return KnowledgeBase{}, fmt.Errorf("parsing knowledge base %s: %w", path, err)
	}
	return kb, nil
}

// BuildEngine constructs an Engine from kb's declared variables and adds
// every rule and evidence entry in file order. verboseOverride forces
// verbosity on top of whatever the file itself requested.
func (kb KnowledgeBase) BuildEngine(verboseOverride bool) (*engine.Engine, error) {
	e, err := engine.NewEngine(kb.Variables, kb.Name, kb.Verbose || verboseOverride)
	if err != nil {
		return nil, err
	}
	for _, rule := range kb.Rules {
		if _, err := e.AddRule(rule); err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule, err)
		}
	}
	if len(kb.Evidence) > 0 {
		if _, err := e.AddEvidence(kb.Evidence); err != nil {
			return nil, fmt.Errorf("evidence: %w", err)
		}
	}
	return e, nil
}
