// Package repomanager selects and wires the configured storage backend. The
// file and postgres backends are substitutable behind users.Repository with
// no caller-visible behavioral difference.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accountdesk/internal/server/config"
	"github.com/dmitrijs2005/accountdesk/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations for one backend.
type RepositoryManager interface {
	// Users returns the user record store.
	Users() users.Repository

	// Close releases backend resources (connection pool for postgres,
	// nothing for the file backend).
	Close() error
}

// New builds the manager named by cfg.StoreBackend ("file" or "postgres").
// Backend selection happens exactly once, at process start.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		return NewFileRepositoryManager(cfg.UserFilePath)
	case config.StoreBackendPostgres:
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}
}
