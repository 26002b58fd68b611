// Package pipeline is the authorization gateway for every outbound API call:
// it attaches the stored bearer credential, detects expiry via 401 and
// coordinates a single transparent recovery before the call is surfaced to
// its caller.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/logger"
	"github.com/careerline/careerline/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Pipeline sends authorized requests and recovers from token expiry. One
// instance is shared by every resource client.
type Pipeline struct {
	client    *http.Client
	baseURL   string
	store     session.Store
	refresher *Refresher
	manager   *session.Manager
}

// PipelineParams holds the dependencies for constructing a Pipeline.
type PipelineParams struct {
	fx.In

	Config    *config.APIConfig
	Store     session.Store
	Refresher *Refresher
	Manager   *session.Manager
}

// New creates a Pipeline with the configured timeout.
func New(params PipelineParams) *Pipeline {
	return &Pipeline{
		client: &http.Client{
			Timeout: params.Config.RequestTimeout(),
		},
		baseURL:   strings.TrimRight(params.Config.BaseURL, "/"),
		store:     params.Store,
		refresher: params.Refresher,
		manager:   params.Manager,
	}
}

// Do executes the request. Behaviour on 401:
//
//   - anonymous requests and the refresh endpoint itself are never recovered
//   - without a stored refresh token the session expires immediately, no
//     renewal call is made
//   - otherwise renewal runs (shared across concurrent failures) and the
//     original request is replayed exactly once with the fresh token
//   - a replay that 401s again expires the session rather than renewing again
//
// Every non-401 response, including errors, is returned unchanged. Transport
// failures are surfaced as-is and never touch the session.
func (p *Pipeline) Do(ctx context.Context, req *Request) (*Response, error) {
	token := ""
	if !req.Anonymous {
		if cred := p.store.Read(); cred != nil {
			token = cred.AccessToken
		}
	}

	resp, err := p.dispatch(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || req.Anonymous {
		return resp, nil
	}

	if req.Path == RefreshPath {
		// The renewal request failing with 401 must not renew itself.
		return nil, p.expire("refresh credential rejected")
	}

	cred := p.store.Read()
	if cred == nil || cred.RefreshToken == "" {
		return nil, p.expire("no refresh token available")
	}

	fresh, err := p.refresher.Renew(ctx, token)
	if err != nil {
		logger.Warn("renewal failed", zap.Error(err))
		return nil, p.expire("credential renewal rejected")
	}

	replay, err := p.dispatch(ctx, req, fresh.AccessToken)
	if err != nil {
		return nil, err
	}
	if replay.StatusCode == http.StatusUnauthorized {
		// Renewed and still rejected: terminal, never a second renewal.
		return nil, p.expire("request rejected after renewal")
	}
	return replay, nil
}

func (p *Pipeline) dispatch(ctx context.Context, req *Request, token string) (*Response, error) {
	url := p.baseURL + req.Path
	if len(req.Query) > 0 {
		url += "?" + req.Query.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
		Headers:    resp.Header,
	}, nil
}

func (p *Pipeline) expire(reason string) error {
	p.manager.Expire(reason)
	return fmt.Errorf("%w: %s", session.ErrSessionExpired, reason)
}
