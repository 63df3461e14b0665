// Package domain classifies file paths into semantic categories used to
// filter which learned patterns are relevant to the file being worked on.
package domain

import (
	"path/filepath"
	"strings"
)

// General is the fallback label for paths no rule matches.
const General = "general"

// Rule maps paths to one domain label. A path matches when any directory
// segment equals one of Segments, or the base file name contains one of
// Keywords as a substring. Matching is case-insensitive.
type Rule struct {
	Name     string   `yaml:"name"`
	Segments []string `yaml:"segments"`
	Keywords []string `yaml:"keywords"`
}

// Classifier evaluates rules as an ordered cascade: the first matching rule
// wins, so a path satisfying several categories resolves to the earliest.
// A Classifier is pure; identical inputs always yield identical labels.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier over the given rules, evaluated in order.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// DefaultRules returns the built-in cascade:
// auth, api, cache, database, ui, test.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "auth",
			Segments: []string{"auth", "login", "session", "jwt", "oauth", "sso"},
			Keywords: []string{"auth", "login", "session", "jwt", "oauth", "sso", "password", "credential"},
		},
		{
			Name:     "api",
			Segments: []string{"api", "routes", "endpoints", "controllers", "handlers", "graphql", "rest"},
			Keywords: []string{"api", "route", "endpoint", "controller", "handler", "resolver"},
		},
		{
			Name:     "cache",
			Segments: []string{"cache", "redis", "memcached"},
			Keywords: []string{"cache", "redis", "memcache"},
		},
		{
			Name:     "database",
			Segments: []string{"db", "database", "models", "migrations", "repositories", "schema", "sql"},
			Keywords: []string{"database", "model", "migration", "repository", "schema", "query"},
		},
		{
			Name:     "ui",
			Segments: []string{"ui", "components", "views", "pages", "frontend", "styles", "layouts"},
			Keywords: []string{"component", "view", "page", "style", "layout", "widget"},
		},
		{
			Name:     "test",
			Segments: []string{"test", "tests", "__tests__", "spec", "e2e"},
			Keywords: []string{"test", "spec", "mock", "fixture"},
		},
	}
}

// Classify returns the domain label for path, or General if no rule matches.
func (c *Classifier) Classify(path string) string {
	lower := strings.ToLower(path)
	segments := splitSegments(lower)
	base := filepath.Base(lower)

	for _, rule := range c.rules {
		if matchRule(rule, segments, base) {
			return rule.Name
		}
	}
	return General
}

func matchRule(rule Rule, segments []string, base string) bool {
	for _, want := range rule.Segments {
		for _, seg := range segments {
			if seg == want {
				return true
			}
		}
	}
	for _, kw := range rule.Keywords {
		if strings.Contains(base, kw) {
			return true
		}
	}
	return false
}

// splitSegments breaks a lower-cased path into its non-empty components,
// accepting both separators so Windows paths classify the same way.
func splitSegments(lower string) []string {
	parts := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	return parts
}
