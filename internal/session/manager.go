package session

import (
	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/logger"
	"github.com/careerline/careerline/internal/nav"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Manager is the client-visible session surface and the owner of the
// terminal-failure path. UI collaborators read IsAuthenticated/Profile and
// call Logout; the request pipeline and the route guard call Expire.
type Manager struct {
	store      Store
	state      *State
	navigator  nav.Navigator
	loginRoute string
}

// ManagerParams holds the dependencies for constructing a Manager.
type ManagerParams struct {
	fx.In

	Store     Store
	State     *State
	Navigator nav.Navigator
	Routes    *config.RoutesConfig
}

// NewManager creates a Manager.
func NewManager(params ManagerParams) *Manager {
	return &Manager{
		store:      params.Store,
		state:      params.State,
		navigator:  params.Navigator,
		loginRoute: params.Routes.Login,
	}
}

// IsAuthenticated reports whether a profile-backed session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.state.Snapshot().Status == StatusAuthenticated
}

// Profile returns the fetched profile, or nil outside an authenticated
// session.
func (m *Manager) Profile() *Profile {
	return m.state.Snapshot().Profile
}

// Snapshot exposes the full read-only session view.
func (m *Manager) Snapshot() Snapshot {
	return m.state.Snapshot()
}

// Establish installs a freshly minted credential and profile after login.
func (m *Manager) Establish(c Credential, p Profile) {
	m.store.Write(c)
	m.state.Establish(c, p)
	logger.Info("session established", zap.String("email", p.Email))
}

// Logout ends the session at the user's request.
func (m *Manager) Logout() {
	m.Expire("logged out")
}

// Expire runs the terminal-failure path: clear the stored credential, move
// the state to logged_out with the given reason and navigate to the public
// entry route. Concurrent invocations collapse into a single clear and a
// single navigation; later calls are no-ops.
func (m *Manager) Expire(reason string) {
	if !m.state.ExpireOnce(reason) {
		return
	}
	m.store.Clear()
	logger.Info("session ended", zap.String("reason", reason))
	m.navigator.Navigate(m.loginRoute)
}
