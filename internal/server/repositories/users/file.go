package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dmitrijs2005/accountdesk/internal/common"
	"github.com/dmitrijs2005/accountdesk/internal/filex"
	"github.com/dmitrijs2005/accountdesk/internal/server/models"
)

// FileRepository stores the whole user list as one JSON document. Every
// operation holds mu for its full read-modify-write, so the document is a
// single-writer resource: operation N's write is durable before operation
// N+1 begins its read. The lock makes the duplicate-email check on Create
// atomic with the insert, which the lifecycle service's lookup-then-insert
// check alone cannot guarantee.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository opens (and if needed initializes to an empty list) the
// document at path.
func NewFileRepository(path string) (*FileRepository, error) {
	if err := filex.EnsureFile(path, []byte("[]")); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	return &FileRepository{path: path}, nil
}

// load reads and decodes the full document. Caller must hold mu.
func (r *FileRepository) load() ([]*models.User, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", common.ErrorStorageUnavailable, r.path, err)
	}

	var all []*models.User
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", common.ErrorStorageUnavailable, r.path, err)
	}

	return all, nil
}

// save encodes and rewrites the full document. Caller must hold mu.
func (r *FileRepository) save(all []*models.User) error {
	if all == nil {
		all = []*models.User{}
	}

	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", common.ErrorStorageUnavailable, r.path, err)
	}

	if err := os.WriteFile(r.path, b, 0o660); err != nil {
		return fmt.Errorf("%w: writing %s: %v", common.ErrorStorageUnavailable, r.path, err)
	}

	return nil
}

func (r *FileRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, u := range all {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return nil, common.ErrorNotFound
}

func (r *FileRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}

	for _, u := range all {
		if strings.EqualFold(u.Email, user.Email) {
			return common.ErrorDuplicateEmail
		}
	}

	all = append(all, user)
	return r.save(all)
}

func (r *FileRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}

	for i, u := range all {
		if u.ID == user.ID {
			all[i] = user
			return r.save(all)
		}
	}

	return common.ErrorNotFound
}

func (r *FileRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileRepository) Delete(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.load()
	if err != nil {
		return err
	}

	for i, u := range all {
		if u.ID == user.ID {
			all = append(all[:i], all[i+1:]...)
			return r.save(all)
		}
	}

	return common.ErrorNotFound
}
