package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/careerline/careerline/internal/logger"
	"github.com/careerline/careerline/internal/pipeline"
	"github.com/careerline/careerline/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	loginPath = "/auth/login"
	mePath    = "/auth/me"
)

// AuthClient drives the authentication endpoints and the session bootstrap.
type AuthClient struct {
	pipe    *pipeline.Pipeline
	store   session.Store
	state   *session.State
	manager *session.Manager
}

// AuthClientParams holds the dependencies for constructing an AuthClient.
type AuthClientParams struct {
	fx.In

	Pipeline *pipeline.Pipeline
	Store    session.Store
	State    *session.State
	Manager  *session.Manager
}

// NewAuthClient creates an AuthClient.
func NewAuthClient(params AuthClientParams) *AuthClient {
	return &AuthClient{
		pipe:    params.Pipeline,
		store:   params.Store,
		state:   params.State,
		manager: params.Manager,
	}
}

// Login exchanges credentials for a token pair, fetches the profile and
// establishes the session. A 401 from the login endpoint means the
// credentials were wrong, never that renewal should run.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*session.Profile, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := c.pipe.Do(ctx, &pipeline.Request{
		Method:    "POST",
		Path:      loginPath,
		Body:      body,
		Anonymous: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: invalid email or password", session.ErrUnauthorized)
	}
	if !resp.OK() {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	var cred session.Credential
	if err := json.Unmarshal(resp.Body, &cred); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if !cred.Complete() {
		return nil, fmt.Errorf("login returned an incomplete credential pair")
	}

	// Persist before the profile fetch so Me goes out with the new bearer.
	c.store.Write(cred)
	c.state.SetCredential(cred)

	profile, err := c.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile fetch after login: %w", err)
	}

	c.manager.Establish(cred, *profile)
	return profile, nil
}

// Me fetches the authenticated user's profile.
func (c *AuthClient) Me(ctx context.Context) (*session.Profile, error) {
	var profile session.Profile
	if err := getJSON(ctx, c.pipe, mePath, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Hydrate restores the session on startup from the durable store. With no
// stored credential the state stays idle and the guard treats the user as
// logged out; with one, the profile fetch settles the session either way.
func (c *AuthClient) Hydrate(ctx context.Context) {
	cred := c.store.Read()
	if cred == nil {
		logger.Debug("no stored credential, skipping hydration")
		return
	}

	c.state.SetCredential(*cred)
	if !c.state.BeginProfileLoad() {
		return
	}

	profile, err := c.Me(ctx)
	if err != nil {
		// An auth failure already ran the terminal path inside the
		// pipeline; FailProfileLoad is a no-op in that case. Anything else
		// settles back to idle with the error recorded for the guard.
		c.state.FailProfileLoad(err)
		logger.Warn("hydration profile fetch failed", zap.Error(err))
		return
	}

	c.state.FinishProfileLoad(*profile)
	logger.Info("session hydrated", zap.String("email", profile.Email))
}

// Logout ends the session at the user's request.
func (c *AuthClient) Logout() {
	c.manager.Logout()
}
