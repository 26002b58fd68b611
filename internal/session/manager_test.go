package session

import (
	"sync"
	"testing"

	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/nav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingNavigator records navigation events for assertions.
type countingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *countingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *countingNavigator) visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

func newTestManager() (*Manager, *State, Store, *countingNavigator) {
	state := NewState()
	store := NewMemoryStore()
	navigator := &countingNavigator{}
	manager := NewManager(ManagerParams{
		Store:     store,
		State:     state,
		Navigator: navigator,
		Routes:    &config.Default().Routes,
	})
	return manager, state, store, navigator
}

var _ nav.Navigator = (*countingNavigator)(nil)

func TestManager_EstablishThenLogout(t *testing.T) {
	manager, _, store, navigator := newTestManager()

	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Profile())

	manager.Establish(testCred, testProfile)
	assert.True(t, manager.IsAuthenticated())
	require.NotNil(t, manager.Profile())
	assert.Equal(t, testProfile.Email, manager.Profile().Email)
	require.NotNil(t, store.Read())

	manager.Logout()
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.Profile())
	assert.Nil(t, store.Read())
	assert.Equal(t, []string{"/login"}, navigator.visited())
}

func TestManager_ExpireIsIdempotent(t *testing.T) {
	manager, state, store, navigator := newTestManager()
	manager.Establish(testCred, testProfile)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.Expire("access token rejected")
		}()
	}
	wg.Wait()

	assert.Len(t, navigator.visited(), 1, "exactly one navigation event")
	assert.Nil(t, store.Read())
	assert.Equal(t, StatusLoggedOut, state.Snapshot().Status)
	assert.Equal(t, "access token rejected", state.Snapshot().Reason)
}

func TestManager_ExpireAfterLogoutIsNoOp(t *testing.T) {
	manager, _, _, navigator := newTestManager()
	manager.Establish(testCred, testProfile)

	manager.Logout()
	manager.Expire("late failure")

	assert.Len(t, navigator.visited(), 1)
	assert.Equal(t, "logged out", manager.Snapshot().Reason)
}
