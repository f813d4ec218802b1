package threads

import (
	"strings"
)

// Matcher selects goroutine snapshots.
type Matcher interface {
	// Match reports whether s is selected.
	Match(s Snapshot) bool

	// Name returns the matcher name for logging.
	Name() string
}

// MainGoroutineMatcher selects the goroutine carrying the reserved main name.
type MainGoroutineMatcher struct{}

// MainGoroutine returns a matcher for the main goroutine.
func MainGoroutine() *MainGoroutineMatcher {
	return &MainGoroutineMatcher{}
}

// Match returns true if the snapshot is named "main".
func (*MainGoroutineMatcher) Match(s Snapshot) bool {
	return s.Name == MainName
}

// Name returns the matcher name.
func (*MainGoroutineMatcher) Name() string {
	return "main"
}

// NameContainsMatcher selects goroutines whose name contains a hint.
type NameContainsMatcher struct {
	hint string
}

// NameContains returns a substring matcher. When several goroutines contain
// the hint, which one wins is unspecified.
func NameContains(hint string) *NameContainsMatcher {
	return &NameContainsMatcher{hint: hint}
}

// Match returns true if the snapshot name contains the hint.
func (m *NameContainsMatcher) Match(s Snapshot) bool {
	return strings.Contains(s.Name, m.hint)
}

// Name returns the matcher name.
func (m *NameContainsMatcher) Name() string {
	return "name_contains:" + m.hint
}

// AllowListMatcher selects goroutines whose name matches any of a set of
// patterns. An empty allow list selects everything.
type AllowListMatcher struct {
	patterns []Pattern
}

// NewAllowList compiles the given glob/regex patterns.
func NewAllowList(patterns []string) (*AllowListMatcher, error) {
	m := &AllowListMatcher{patterns: make([]Pattern, 0, len(patterns))}

	for _, p := range patterns {
		compiled, err := GetCachedPattern(p)
		if err != nil {
			return nil, err
		}

		m.patterns = append(m.patterns, compiled)
	}

	return m, nil
}

// Match returns true if any pattern matches the snapshot name.
func (m *AllowListMatcher) Match(s Snapshot) bool {
	if len(m.patterns) == 0 {
		return true
	}

	for _, p := range m.patterns {
		if p.Match(s.Name) {
			return true
		}
	}

	return false
}

// Name returns the matcher name.
func (m *AllowListMatcher) Name() string {
	parts := make([]string, 0, len(m.patterns))
	for _, p := range m.patterns {
		parts = append(parts, p.String())
	}

	return "allow_list:" + strings.Join(parts, ",")
}

// Verify interface compliance.
var (
	_ Matcher = (*MainGoroutineMatcher)(nil)
	_ Matcher = (*NameContainsMatcher)(nil)
	_ Matcher = (*AllowListMatcher)(nil)
)
