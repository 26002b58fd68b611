package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/careerline/careerline/internal/api"
	"github.com/careerline/careerline/internal/session"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleJobs = []api.Job{
	{ID: 1, Title: "Backend Engineer", Company: "Acme", Location: "Berlin", Remote: true,
		PostedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)},
	{ID: 2, Title: "SRE", Company: "Initech", Location: "Austin",
		PostedAt: time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)},
}

func TestJobsClient_ListAndGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs":
			assert.Equal(t, "backend", r.URL.Query().Get("q"))
			_ = json.NewEncoder(w).Encode(sampleJobs)
		case "/jobs/1":
			_ = json.NewEncoder(w).Encode(sampleJobs[0])
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	h := newHarness(t, server.URL)

	jobs, err := h.jobs.List(context.Background(), "backend")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleJobs, jobs); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	job, err := h.jobs.Get(context.Background(), 1)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleJobs[0], *job); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
}

func TestJobsClient_NotFoundSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	h := newHarness(t, server.URL)

	_, err := h.jobs.Get(context.Background(), 404)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

// A resource call riding an expired access token is renewed transparently:
// the caller sees only the final result.
func TestJobsClient_TransparentRenewal(t *testing.T) {
	stale := session.Credential{AccessToken: "stale", RefreshToken: "refresh-ok"}
	fresh := session.Credential{AccessToken: "fresh", RefreshToken: "refresh-next"}

	var refreshCalls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			_ = json.NewEncoder(w).Encode(fresh)
		case "/jobs":
			if r.Header.Get("Authorization") != "Bearer "+fresh.AccessToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(sampleJobs)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	h := newHarness(t, server.URL)
	h.store.Write(stale)

	jobs, err := h.jobs.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, int64(1), refreshCalls.Load())

	stored := h.store.Read()
	require.NotNil(t, stored)
	assert.Equal(t, fresh, *stored)
}
