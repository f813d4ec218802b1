package threads

import (
	"regexp"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
)

// Pattern matches goroutine names.
type Pattern interface {
	// Match reports whether name matches.
	Match(name string) bool

	// String returns the original pattern text.
	String() string
}

// PatternType indicates whether a pattern is a glob or regex.
type PatternType int

const (
	// PatternTypeGlob indicates a glob pattern (e.g., "render-*").
	PatternTypeGlob PatternType = iota

	// PatternTypeRegex indicates a regex pattern (e.g., "^worker-\d+$").
	PatternTypeRegex
)

// regexIndicators are substrings that only make sense in a regex.
var regexIndicators = []string{
	"^",
	"$",
	"(?",
	"\\d",
	"\\w",
	"\\s",
	"\\b",
	"(",
	")",
	"|",
	"+",
	".*",
	".+",
	"\\.",
}

// DetectPatternType determines whether a pattern is a glob or regex.
func DetectPatternType(pattern string) PatternType {
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return PatternTypeRegex
		}
	}

	return PatternTypeGlob
}

// GlobPattern wraps a compiled glob. Goroutine names have no separators,
// so "*" matches any run of characters.
type GlobPattern struct {
	pattern  string
	compiled glob.Glob
}

// NewGlobPattern compiles a glob pattern.
func NewGlobPattern(pattern string) (*GlobPattern, error) {
	compiled, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid glob %q", pattern)
	}

	return &GlobPattern{pattern: pattern, compiled: compiled}, nil
}

// Match returns true if name matches the glob.
func (p *GlobPattern) Match(name string) bool {
	return p.compiled.Match(name)
}

// String returns the original pattern string.
func (p *GlobPattern) String() string {
	return p.pattern
}

// RegexPattern wraps a compiled regular expression.
type RegexPattern struct {
	pattern  string
	compiled *regexp.Regexp
}

// NewRegexPattern compiles a regex pattern.
func NewRegexPattern(pattern string) (*RegexPattern, error) {
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid regex %q", pattern)
	}

	return &RegexPattern{pattern: pattern, compiled: compiled}, nil
}

// Match returns true if name matches the regex.
func (p *RegexPattern) Match(name string) bool {
	return p.compiled.MatchString(name)
}

// String returns the original pattern string.
func (p *RegexPattern) String() string {
	return p.pattern
}

// CompilePattern compiles a pattern string, auto-detecting its type.
//
//nolint:ireturn // interface for polymorphism
func CompilePattern(pattern string) (Pattern, error) {
	if DetectPatternType(pattern) == PatternTypeRegex {
		return NewRegexPattern(pattern)
	}

	return NewGlobPattern(pattern)
}

// PatternCache provides thread-safe caching of compiled patterns.
type PatternCache struct {
	mu       sync.RWMutex
	patterns map[string]Pattern
	errors   map[string]error
}

// NewPatternCache creates a new PatternCache.
func NewPatternCache() *PatternCache {
	return &PatternCache{
		patterns: make(map[string]Pattern),
		errors:   make(map[string]error),
	}
}

// Get returns a compiled pattern, compiling and caching it if necessary.
// A pattern that failed to compile keeps returning the same error.
//
//nolint:ireturn // interface for polymorphism
func (c *PatternCache) Get(pattern string) (Pattern, error) {
	c.mu.RLock()

	if p, ok := c.patterns[pattern]; ok {
		c.mu.RUnlock()
		return p, nil
	}

	if err, ok := c.errors[pattern]; ok {
		c.mu.RUnlock()
		return nil, err
	}

	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.patterns[pattern]; ok {
		return p, nil
	}

	if err, ok := c.errors[pattern]; ok {
		return nil, err
	}

	compiled, err := CompilePattern(pattern)
	if err != nil {
		c.errors[pattern] = err
		return nil, err
	}

	c.patterns[pattern] = compiled

	return compiled, nil
}

// Size returns the number of cached patterns.
func (c *PatternCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.patterns)
}

var defaultCache = NewPatternCache()

// GetCachedPattern returns a compiled pattern from the default cache.
//
//nolint:ireturn // interface for polymorphism
func GetCachedPattern(pattern string) (Pattern, error) {
	return defaultCache.Get(pattern)
}
