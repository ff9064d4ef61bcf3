package fieldmask

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Name   string   `yaml:"name"`
	Kind   RuleKind `yaml:"kind"`
	Source string   `yaml:"source"`
	Target string   `yaml:"target"`
}

// LoadRules decodes an ordered rule table from YAML:
//
//	rules:
//	  - name: reranker-provider
//	    kind: union-collapse
//	    source: retriever.reranker.provider
//	    target: retriever
func LoadRules(r io.Reader) (Rules, error) {
	var f ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	out := make(Rules, 0, len(f.Rules))
	for i, e := range f.Rules {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("%w: rule %d (%q) needs source and target", ErrInvalidRule, i, e.Name)
		}
		if !e.Kind.valid() {
			return nil, fmt.Errorf("%w: rule %d (%q) has unknown kind %q", ErrInvalidRule, i, e.Name, e.Kind)
		}
		out = append(out, PrefixRule(e.Name, e.Kind, Path(e.Source), Path(e.Target)))
	}
	return out, nil
}

// LoadRulesFile reads a rule table from a YAML file.
func LoadRulesFile(path string) (Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRules(f)
}
