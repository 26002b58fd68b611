package router

import (
	"errors"
	"sync"

	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/session"
	"go.uber.org/fx"
)

// Phase tracks where the guard is in the hydration lifecycle.
type Phase string

const (
	PhaseAwaitingHydration Phase = "awaiting_hydration"
	PhaseLoadingProfile    Phase = "loading_profile"
	PhaseDecided           Phase = "decided"
)

// Action is the guard's verdict for a route.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionRedirect Action = "redirect"
)

// Decision is the outcome of one guard evaluation.
type Decision struct {
	Action Action
	Target string // redirect target, empty for allow
}

func allow() Decision { return Decision{Action: ActionAllow} }

func redirect(target string) Decision {
	return Decision{Action: ActionRedirect, Target: target}
}

// Guard decides, for the current session state and navigation target,
// between allowing render, redirecting to the public entry route and
// redirecting away from pre-authentication pages. It never redirects while a
// profile fetch is outstanding, so the decision is always made against
// settled data.
type Guard struct {
	state   *session.State
	manager *session.Manager
	matcher *Matcher
	routes  *config.RoutesConfig
	login   string
	landing string

	mu    sync.Mutex
	phase Phase
}

// GuardParams holds the dependencies for constructing a Guard.
type GuardParams struct {
	fx.In

	State   *session.State
	Manager *session.Manager
	Matcher *Matcher
	Routes  *config.RoutesConfig
}

// NewGuard creates a Guard.
func NewGuard(params GuardParams) *Guard {
	return &Guard{
		state:   params.State,
		manager: params.Manager,
		matcher: params.Matcher,
		routes:  params.Routes,
		login:   params.Routes.Login,
		landing: params.Routes.Landing,
		phase:   PhaseAwaitingHydration,
	}
}

// Phase returns the guard's current lifecycle phase.
func (g *Guard) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Evaluate is re-run whenever credential presence, profile or route changes.
func (g *Guard) Evaluate(route string) Decision {
	snap := g.state.Snapshot()

	switch snap.Status {
	case session.StatusLoading:
		// A profile fetch is outstanding; deciding now would bounce the
		// user off a route they may be entitled to.
		g.setPhase(PhaseLoadingProfile)
		return allow()

	case session.StatusIdle:
		if snap.Credential != nil && snap.ProfileErr == nil {
			// Credential hydrated but the profile fetch has not settled.
			g.setPhase(PhaseAwaitingHydration)
			return allow()
		}
	}

	g.setPhase(PhaseDecided)

	// A credential whose backing profile fetch was rejected as unauthorized
	// is dead weight: end the session, then send the user to the entry page.
	if snap.Credential != nil && isAuthFailure(snap.ProfileErr) {
		g.manager.Expire("profile fetch unauthorized")
		return redirect(g.login)
	}

	if snap.Credential == nil && !g.matcher.Public(route) {
		return redirect(g.login)
	}

	if snap.Status == session.StatusAuthenticated && g.routes.PreAuth(route) {
		return redirect(g.landing)
	}

	return allow()
}

func (g *Guard) setPhase(p Phase) {
	g.mu.Lock()
	g.phase = p
	g.mu.Unlock()
}

func isAuthFailure(err error) bool {
	return err != nil &&
		(errors.Is(err, session.ErrUnauthorized) || errors.Is(err, session.ErrSessionExpired))
}
