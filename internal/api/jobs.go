package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/careerline/careerline/internal/pipeline"
)

// Job is a posting on the platform.
type Job struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Remote      bool      `json:"remote"`
	Description string    `json:"description,omitempty"`
	PostedAt    time.Time `json:"postedAt"`
}

// JobsClient reads job postings. Listings and details are public endpoints;
// the pipeline still attaches a bearer when one is stored so the backend can
// personalise results.
type JobsClient struct {
	pipe *pipeline.Pipeline
}

// NewJobsClient creates a JobsClient.
func NewJobsClient(pipe *pipeline.Pipeline) *JobsClient {
	return &JobsClient{pipe: pipe}
}

// List returns postings matching the query; an empty query returns the
// default feed.
func (c *JobsClient) List(ctx context.Context, query string) ([]Job, error) {
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	var jobs []Job
	if err := getJSON(ctx, c.pipe, "/jobs", q, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Get returns one posting by id.
func (c *JobsClient) Get(ctx context.Context, id int64) (*Job, error) {
	var job Job
	if err := getJSON(ctx, c.pipe, fmt.Sprintf("/jobs/%d", id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
