package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/logger"
	"github.com/careerline/careerline/internal/session"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RefreshPath is the renewal endpoint. The pipeline refuses to run its
// recovery logic for this path to keep renewal from recursing into itself.
const RefreshPath = "/auth/refresh"

const renewKey = "renew"

// Refresher coordinates credential renewal so that any number of requests
// failing against the same expired access token produce exactly one
// POST /auth/refresh, with every caller sharing that call's outcome.
type Refresher struct {
	client  *http.Client
	baseURL string
	store   session.Store
	state   *session.State
	group   singleflight.Group
}

// RefresherParams holds the dependencies for constructing a Refresher.
type RefresherParams struct {
	fx.In

	Config *config.APIConfig
	Store  session.Store
	State  *session.State
}

// NewRefresher creates a Refresher.
func NewRefresher(params RefresherParams) *Refresher {
	return &Refresher{
		client:  &http.Client{Timeout: params.Config.RequestTimeout()},
		baseURL: params.Config.BaseURL,
		store:   params.Store,
		state:   params.State,
	}
}

// Renew returns a fresh credential pair, performing at most one network
// renewal at a time. A renewal already in flight is joined, not duplicated,
// and stale names the access token the caller just saw rejected: when the
// store already holds a different one, another caller's renewal has landed
// and its pair is returned without any network call. The in-flight marker is
// dropped on completion regardless of outcome, so a future 401 can start a
// fresh attempt.
func (r *Refresher) Renew(ctx context.Context, stale string) (session.Credential, error) {
	// The outcome is shared between callers, so no single caller's
	// cancellation may abort it.
	ctx = context.WithoutCancel(ctx)

	v, err, shared := r.group.Do(renewKey, func() (interface{}, error) {
		return r.renew(ctx, stale)
	})
	if err != nil {
		return session.Credential{}, err
	}
	if shared {
		logger.Debug("renewal outcome shared with concurrent caller")
	}
	return v.(session.Credential), nil
}

func (r *Refresher) renew(ctx context.Context, stale string) (session.Credential, error) {
	current := r.store.Read()
	if current == nil || current.RefreshToken == "" {
		return session.Credential{}, fmt.Errorf("%w: no refresh token", session.ErrRenewalFailed)
	}
	if stale != "" && current.AccessToken != stale {
		// A concurrent renewal already replaced the pair.
		return *current, nil
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": current.RefreshToken})
	if err != nil {
		return session.Credential{}, fmt.Errorf("%w: %v", session.ErrRenewalFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+RefreshPath, bytes.NewReader(payload))
	if err != nil {
		return session.Credential{}, fmt.Errorf("%w: %v", session.ErrRenewalFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return session.Credential{}, fmt.Errorf("%w: %v", session.ErrRenewalFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Credential{}, fmt.Errorf("%w: %v", session.ErrRenewalFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("renewal rejected", zap.Int("status", resp.StatusCode))
		return session.Credential{}, fmt.Errorf("%w: refresh endpoint returned %d", session.ErrRenewalFailed, resp.StatusCode)
	}

	var fresh session.Credential
	if err := json.Unmarshal(body, &fresh); err != nil {
		return session.Credential{}, fmt.Errorf("%w: %v", session.ErrRenewalFailed, err)
	}
	if !fresh.Complete() {
		return session.Credential{}, fmt.Errorf("%w: refresh endpoint returned an incomplete pair", session.ErrRenewalFailed)
	}

	r.store.Write(fresh)
	r.state.SetCredential(fresh)
	logger.Info("credential renewed")
	return fresh, nil
}
