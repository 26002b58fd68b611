// Package api contains the typed clients for the careerline backend. Every
// client issues its calls through the one shared pipeline; none of them
// touches the credential store or the session state directly.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/careerline/careerline/internal/pipeline"
)

// APIError is a non-2xx response surfaced to the caller unchanged.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

func getJSON(ctx context.Context, pipe *pipeline.Pipeline, path string, query url.Values, out interface{}) error {
	resp, err := pipe.Do(ctx, &pipeline.Request{
		Method: "GET",
		Path:   path,
		Query:  query,
	})
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func postJSON(ctx context.Context, pipe *pipeline.Pipeline, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	resp, err := pipe.Do(ctx, &pipeline.Request{
		Method: "POST",
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func deleteJSON(ctx context.Context, pipe *pipeline.Pipeline, path string) error {
	resp, err := pipe.Do(ctx, &pipeline.Request{
		Method: "DELETE",
		Path:   path,
	})
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

func decode(resp *pipeline.Response, out interface{}) error {
	if !resp.OK() {
		return &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
