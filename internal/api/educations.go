package api

import (
	"context"
	"fmt"

	"github.com/careerline/careerline/internal/pipeline"
)

// Education is one entry in the profile's education history.
type Education struct {
	ID        int64  `json:"id,omitempty"`
	School    string `json:"school"`
	Degree    string `json:"degree,omitempty"`
	Field     string `json:"field,omitempty"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear,omitempty"`
}

// EducationsClient edits the profile's education history.
type EducationsClient struct {
	pipe *pipeline.Pipeline
}

// NewEducationsClient creates an EducationsClient.
func NewEducationsClient(pipe *pipeline.Pipeline) *EducationsClient {
	return &EducationsClient{pipe: pipe}
}

// List returns the user's education entries.
func (c *EducationsClient) List(ctx context.Context) ([]Education, error) {
	var entries []Education
	if err := getJSON(ctx, c.pipe, "/educations", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add creates a new education entry and returns it with its assigned id.
func (c *EducationsClient) Add(ctx context.Context, entry Education) (*Education, error) {
	var created Education
	if err := postJSON(ctx, c.pipe, "/educations", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an education entry.
func (c *EducationsClient) Delete(ctx context.Context, id int64) error {
	return deleteJSON(ctx, c.pipe, fmt.Sprintf("/educations/%d", id))
}
