package api

import (
	"context"
	"fmt"

	"github.com/careerline/careerline/internal/pipeline"
)

// Experience is one entry in the profile's work history.
type Experience struct {
	ID        int64  `json:"id,omitempty"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// ExperiencesClient edits the profile's work history.
type ExperiencesClient struct {
	pipe *pipeline.Pipeline
}

// NewExperiencesClient creates an ExperiencesClient.
func NewExperiencesClient(pipe *pipeline.Pipeline) *ExperiencesClient {
	return &ExperiencesClient{pipe: pipe}
}

// List returns the user's experience entries.
func (c *ExperiencesClient) List(ctx context.Context) ([]Experience, error) {
	var entries []Experience
	if err := getJSON(ctx, c.pipe, "/experiences", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add creates a new experience entry and returns it with its assigned id.
func (c *ExperiencesClient) Add(ctx context.Context, entry Experience) (*Experience, error) {
	var created Experience
	if err := postJSON(ctx, c.pipe, "/experiences", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an experience entry.
func (c *ExperiencesClient) Delete(ctx context.Context, id int64) error {
	return deleteJSON(ctx, c.pipe, fmt.Sprintf("/experiences/%d", id))
}
