package session

import "sync"

// Status is the lifecycle position of the current session.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusLoggedOut     Status = "logged_out"
)

// State is the single in-memory representation of the current user. Only the
// request pipeline, the session manager and the route guard mutate it; every
// other consumer reads through Snapshot.
//
// Invariants, enforced by the mutators:
//   - authenticated implies credential and profile are both set
//   - logged_out implies credential and profile are both nil
//   - idle -> loading happens only while a credential is present
//   - once logged_out, nothing but a fresh Establish revives the session
type State struct {
	mu         sync.Mutex
	credential *Credential
	profile    *Profile
	status     Status
	reason     string
	profileErr error
}

// Snapshot is a read-only copy of the state at one instant.
type Snapshot struct {
	Credential *Credential
	Profile    *Profile
	Status     Status
	Reason     string
	ProfileErr error
}

// NewState creates a State in the idle status.
func NewState() *State {
	return &State{status: StatusIdle}
}

// Snapshot returns a consistent view of the current session.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Status:     s.status,
		Reason:     s.reason,
		ProfileErr: s.profileErr,
	}
	if s.credential != nil {
		c := *s.credential
		snap.Credential = &c
	}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// SetCredential records a credential from hydration or a successful renewal.
// It is a no-op after logout: a terminal decision is never silently undone.
func (s *State) SetCredential(c Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusLoggedOut {
		return
	}
	s.credential = &c
	if s.profile != nil {
		s.status = StatusAuthenticated
	}
}

// BeginProfileLoad moves idle to loading for the duration of a profile fetch.
// It reports false when no credential backs the fetch or a fetch is already
// outstanding.
func (s *State) BeginProfileLoad() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusIdle || s.credential == nil {
		return false
	}
	s.status = StatusLoading
	s.profileErr = nil
	return true
}

// FinishProfileLoad installs a fetched profile and marks the session
// authenticated. No-op after logout.
func (s *State) FinishProfileLoad(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusLoggedOut || s.credential == nil {
		return
	}
	s.profile = &p
	s.profileErr = nil
	s.status = StatusAuthenticated
}

// FailProfileLoad records a failed profile fetch and settles back to idle so
// the guard can decide. If the failure already triggered the terminal path
// the logged_out status wins and the call is a no-op.
func (s *State) FailProfileLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusLoading {
		return
	}
	s.status = StatusIdle
	s.profileErr = err
}

// ExpireOnce transitions to logged_out, clearing credential and profile, and
// reports whether this call performed the transition. Concurrent invocations
// see true exactly once, which is what keeps logout side effects idempotent.
func (s *State) ExpireOnce(reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusLoggedOut {
		return false
	}
	s.status = StatusLoggedOut
	s.credential = nil
	s.profile = nil
	s.profileErr = nil
	s.reason = reason
	return true
}

// Establish replaces the whole session after a successful login, reviving a
// logged_out state.
func (s *State) Establish(c Credential, p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = &c
	s.profile = &p
	s.status = StatusAuthenticated
	s.reason = ""
	s.profileErr = nil
}
