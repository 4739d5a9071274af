package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyRule grants a role access to a path pattern for the methods matched
// by the Methods regular expression.
type PolicyRule struct {
	Role    string `yaml:"role"`
	Path    string `yaml:"path"`
	Methods string `yaml:"methods"`
}

// DefaultPolicies is the RBAC set used when no policy file is present.
// Teachers manage homework; everyone authenticated may read it and use the
// completion and notification endpoints.
func DefaultPolicies() []PolicyRule {
	return []PolicyRule{
		{Role: "role_teacher", Path: "/homework/*", Methods: "(GET|POST|PUT|DELETE)"},
		{Role: "role_student", Path: "/homework/class/:classId", Methods: "GET"},
		{Role: "role_student", Path: "/homework/:id", Methods: "GET"},
		{Role: "role_teacher", Path: "/completion/*", Methods: "(GET|POST)"},
		{Role: "role_student", Path: "/completion/*", Methods: "(GET|POST)"},
		{Role: "role_teacher", Path: "/notification/*", Methods: "(GET|POST|PUT)"},
		{Role: "role_student", Path: "/notification/*", Methods: "(GET|POST|PUT)"},
		{Role: "role_teacher", Path: "/auth/me", Methods: "GET"},
		{Role: "role_student", Path: "/auth/me", Methods: "GET"},
	}
}

// LoadPolicies reads policy rules from a YAML file. A missing file yields
// DefaultPolicies.
func LoadPolicies(path string) ([]PolicyRule, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPolicies(), nil
		}
		return nil, fmt.Errorf("could not read policy file: %w", err)
	}

	var doc struct {
		Rules []PolicyRule `yaml:"policies"`
	}
	if err := yaml.Unmarshal(bytes, &doc); err != nil {
		return nil, fmt.Errorf("could not parse policy yaml: %w", err)
	}
	for i, r := range doc.Rules {
		if r.Role == "" || r.Path == "" || r.Methods == "" {
			return nil, fmt.Errorf("policy %d: role, path and methods are required", i)
		}
	}
	return doc.Rules, nil
}
