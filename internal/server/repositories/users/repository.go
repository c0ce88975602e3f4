// Package users provides the durable store for user records. Two
// interchangeable backends satisfy the same Repository contract: a
// PostgreSQL table and a single JSON document on disk guarded by one
// process-wide lock.
package users

import (
	"context"

	"github.com/dmitrijs2005/accountdesk/internal/server/models"
)

// Repository is the dual-backend user store contract.
//
// Lookup misses and update/delete on an absent id return
// common.ErrorNotFound; a duplicate email on Create returns
// common.ErrorDuplicateEmail; backend I/O faults wrap
// common.ErrorStorageUnavailable.
type Repository interface {
	// FindByEmail returns the user with the given email, compared
	// case-insensitively.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Create appends a new record. The email must not collide with an
	// existing record (case-insensitive).
	Create(ctx context.Context, user *models.User) error

	// Update replaces the full record matched by id. It never inserts.
	Update(ctx context.Context, user *models.User) error

	// GetAll returns a snapshot of every record in store order.
	GetAll(ctx context.Context) ([]*models.User, error)

	// Delete removes the record matched by id.
	Delete(ctx context.Context, user *models.User) error
}
