package repomanager

import (
	"github.com/dmitrijs2005/accountdesk/internal/server/repositories/users"
)

// FileRepositoryManager vends the JSON-document-backed store.
type FileRepositoryManager struct {
	users *users.FileRepository
}

// NewFileRepositoryManager opens (and initializes if absent) the document at
// path. The single FileRepository instance is shared by every caller so the
// whole process funnels through one lock.
func NewFileRepositoryManager(path string) (*FileRepositoryManager, error) {
	repo, err := users.NewFileRepository(path)
	if err != nil {
		return nil, err
	}
	return &FileRepositoryManager{users: repo}, nil
}

// Users returns the user record store.
func (m *FileRepositoryManager) Users() users.Repository {
	return m.users
}

// Close is a no-op for the file backend.
func (m *FileRepositoryManager) Close() error {
	return nil
}
