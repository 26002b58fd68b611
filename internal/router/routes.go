// Package router classifies routes and decides whether the current session
// may render them.
package router

import (
	"regexp"

	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/logger"
	"go.uber.org/zap"
)

// Matcher classifies a route as public or protected. Public routes are a
// static allow-list plus dynamic patterns such as numeric job-detail paths;
// everything else requires a session.
type Matcher struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
}

// NewMatcher compiles the configured classification rules. Patterns that do
// not compile are skipped with a warning rather than failing startup.
func NewMatcher(cfg *config.RoutesConfig) *Matcher {
	m := &Matcher{exact: make(map[string]struct{}, len(cfg.Public))}
	for _, route := range cfg.Public {
		m.exact[route] = struct{}{}
	}
	for _, pattern := range cfg.PublicPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			logger.Warn("skipping invalid public route pattern",
				zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		m.patterns = append(m.patterns, re)
	}
	return m
}

// Public reports whether the route is accessible without a session.
func (m *Matcher) Public(route string) bool {
	if _, ok := m.exact[route]; ok {
		return true
	}
	for _, re := range m.patterns {
		if re.MatchString(route) {
			return true
		}
	}
	return false
}
