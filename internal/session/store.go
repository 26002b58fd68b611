package session

import "sync"

// Store persists the current credential pair across reloads. All operations
// are synchronous and never fail outward: a storage problem is logged by the
// implementation and degrades to "no credential". Write and Clear are atomic
// with respect to the two token fields.
type Store interface {
	Read() *Credential
	Write(Credential)
	Clear()
}

// Compile-time interface satisfaction checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// MemoryStore keeps the credential pair in process memory. It backs tests
// and deployments that opt out of durable storage.
type MemoryStore struct {
	mu   sync.Mutex
	cred *Credential
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read() *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred == nil || !s.cred.Complete() {
		return nil
	}
	c := *s.cred
	return &c
}

func (s *MemoryStore) Write(c Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &c
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
}
