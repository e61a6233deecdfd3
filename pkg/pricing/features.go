package pricing

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// FeatureRule assigns Features to every product whose name contains Match,
// compared case-insensitively.
type FeatureRule struct {
	Match    string   `yaml:"match"`
	Features []string `yaml:"features"`
}

// FeatureRules is an ordered rule list. The first matching rule wins;
// Default applies when none match.
type FeatureRules struct {
	Rules   []FeatureRule `yaml:"rules"`
	Default []string      `yaml:"default"`
}

// DefaultFeatureRules returns the built-in basic, pro and enterprise feature sets.
func DefaultFeatureRules() FeatureRules {
	return FeatureRules{
		Rules: []FeatureRule{
			{
				Match: "basic",
				Features: []string{
					"Bis zu 5 Projekte",
					"E-Mail Support",
					"Grundlegende Analytics",
					"Mobile App Zugang",
				},
			},
			{
				Match: "pro",
				Features: []string{
					"Unbegrenzte Projekte",
					"Prioritäts-Support",
					"Erweiterte Analytics",
					"API Zugang",
					"Team Kollaboration",
					"Export Funktionen",
				},
			},
			{
				Match: "enterprise",
				Features: []string{
					"Alles aus Pro Plan",
					"Dedicated Account Manager",
					"Custom Integrationen",
					"SLA Garantie",
					"Advanced Security",
					"White-Label Optionen",
					"Onboarding Support",
				},
			},
		},
		Default: []string{
			"Alle Grundfunktionen",
			"E-Mail Support",
			"Monatliche Updates",
		},
	}
}

// For returns a copy of the feature list for a product name.
func (r FeatureRules) For(name string) []string {
	lower := strings.ToLower(name)
	for _, rule := range r.Rules {
		if strings.Contains(lower, strings.ToLower(rule.Match)) {
			return slices.Clone(rule.Features)
		}
	}
	return slices.Clone(r.Default)
}

// Validate reports rules that could never match or would match everything.
func (r FeatureRules) Validate() error {
	for i, rule := range r.Rules {
		if strings.TrimSpace(rule.Match) == "" {
			return fmt.Errorf("%w: rule %d has an empty match", ErrInvalidFeatureRules, i)
		}
	}
	return nil
}

// ParseFeatureRules decodes rules from YAML.
func ParseFeatureRules(data []byte) (FeatureRules, error) {
	var rules FeatureRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return FeatureRules{}, fmt.Errorf("%w: %w", ErrInvalidFeatureRules, err)
	}
	if err := rules.Validate(); err != nil {
		return FeatureRules{}, err
	}
	return rules, nil
}

// LoadFeatureRules reads rules from a YAML file.
// An empty path yields the built-in rules.
func LoadFeatureRules(path string) (FeatureRules, error) {
	if path == "" {
		return DefaultFeatureRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FeatureRules{}, fmt.Errorf("read feature rules: %w", err)
	}
	return ParseFeatureRules(data)
}
