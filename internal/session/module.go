package session

import (
	"github.com/careerline/careerline/internal/config"
	"github.com/careerline/careerline/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewStore selects the durable store when a storage path is configured,
// degrading to the in-memory store when the database cannot be opened. A
// broken store must not take the whole client down.
func NewStore(cfg *config.StorageConfig) Store {
	if cfg.Path == "" {
		return NewMemoryStore()
	}
	store, err := NewSQLiteStore(cfg.Path)
	if err != nil {
		logger.Error("falling back to in-memory credential store", zap.Error(err))
		return NewMemoryStore()
	}
	return store
}

// Module provides the session module dependencies
var Module = fx.Module("session",
	fx.Provide(
		NewState,
		NewStore,
		NewManager,
	),
)
