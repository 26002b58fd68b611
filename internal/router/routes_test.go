package router

import (
	"testing"

	"github.com/careerline/careerline/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMatcher_Public(t *testing.T) {
	matcher := NewMatcher(&config.Default().Routes)

	tests := []struct {
		route string
		want  bool
	}{
		{"/", true},
		{"/login", true},
		{"/register", true},
		{"/jobs", true},
		{"/jobs/42", true},
		{"/jobs/42/apply", false},
		{"/jobs/latest", false},
		{"/profile", false},
		{"/messages", false},
		{"/applications", false},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Public(tt.route))
		})
	}
}

func TestMatcher_SkipsInvalidPatterns(t *testing.T) {
	matcher := NewMatcher(&config.RoutesConfig{
		Public:         []string{"/jobs"},
		PublicPatterns: []string{`^/jobs/\d+$`, `([`},
	})

	assert.True(t, matcher.Public("/jobs/7"))
	assert.False(t, matcher.Public("/anything-else"))
}
