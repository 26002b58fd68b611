package api

import (
	"context"
	"fmt"

	"github.com/careerline/careerline/internal/pipeline"
)

// Page is a company or organisation page.
type Page struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	About    string `json:"about,omitempty"`
	Website  string `json:"website,omitempty"`
}

// PagesClient reads company pages.
type PagesClient struct {
	pipe *pipeline.Pipeline
}

// NewPagesClient creates a PagesClient.
func NewPagesClient(pipe *pipeline.Pipeline) *PagesClient {
	return &PagesClient{pipe: pipe}
}

// List returns the pages the user follows.
func (c *PagesClient) List(ctx context.Context) ([]Page, error) {
	var pages []Page
	if err := getJSON(ctx, c.pipe, "/pages", nil, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// Get returns one page by id.
func (c *PagesClient) Get(ctx context.Context, id int64) (*Page, error) {
	var page Page
	if err := getJSON(ctx, c.pipe, fmt.Sprintf("/pages/%d", id), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
