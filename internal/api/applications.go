package api

import (
	"context"
	"time"

	"github.com/careerline/careerline/internal/pipeline"
)

// Application is a submitted job application.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ApplicationsClient submits and lists job applications.
type ApplicationsClient struct {
	pipe *pipeline.Pipeline
}

// NewApplicationsClient creates an ApplicationsClient.
func NewApplicationsClient(pipe *pipeline.Pipeline) *ApplicationsClient {
	return &ApplicationsClient{pipe: pipe}
}

// List returns the user's applications.
func (c *ApplicationsClient) List(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := getJSON(ctx, c.pipe, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Submit applies to a job.
func (c *ApplicationsClient) Submit(ctx context.Context, jobID int64, coverLetter string) (*Application, error) {
	payload := map[string]interface{}{
		"jobId":       jobID,
		"coverLetter": coverLetter,
	}
	var created Application
	if err := postJSON(ctx, c.pipe, "/applications", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
