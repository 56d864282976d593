package aggregators

import (
	"fmt"

	"github.com/gobwas/glob"
)

// URLGrouper folds concrete URLs into configured glob patterns, e.g.
// "/users/42" and "/users/7" both count under "/users/*". Patterns are tried
// in order and the first match wins; '/' is a separator, so "*" matches one
// path segment and "**" matches any number.
type URLGrouper struct {
	patterns []string
	globs    []glob.Glob
}

func NewURLGrouper(patterns []string) (*URLGrouper, error) {
	grouper := &URLGrouper{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid url group %q: %w", pattern, err)
		}
		grouper.patterns = append(grouper.patterns, pattern)
		grouper.globs = append(grouper.globs, g)
	}
	return grouper, nil
}

// Group returns the pattern url belongs to, or url itself when nothing matches.
func (g *URLGrouper) Group(url string) string {
	for i, matcher := range g.globs {
		if matcher.Match(url) {
			return g.patterns[i]
		}
	}
	return url
}
