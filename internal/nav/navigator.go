// Package nav abstracts the navigation side effect behind a capability so
// session code can redirect without reaching for a global location object.
package nav

import (
	"github.com/careerline/careerline/internal/logger"
	"go.uber.org/zap"
)

// Navigator moves the client to a new route.
type Navigator interface {
	Navigate(route string)
}

// Func adapts a plain function to the Navigator interface.
type Func func(route string)

func (f Func) Navigate(route string) { f(route) }

// LogNavigator records navigation events. The embedding shell (web view,
// TUI, tests) supplies a richer implementation when it wants real routing.
type LogNavigator struct{}

// NewLogNavigator creates a LogNavigator.
func NewLogNavigator() *LogNavigator {
	return &LogNavigator{}
}

func (n *LogNavigator) Navigate(route string) {
	logger.Info("navigate", zap.String("route", route))
}
