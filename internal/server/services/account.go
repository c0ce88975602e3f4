// Package services contains server-side business logic. This file implements
// AccountService, which drives the account lifecycle: registration,
// authentication, and the password reset token flow.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/accountdesk/internal/common"
	"github.com/dmitrijs2005/accountdesk/internal/cryptox"
	"github.com/dmitrijs2005/accountdesk/internal/server/config"
	"github.com/dmitrijs2005/accountdesk/internal/server/models"
	"github.com/dmitrijs2005/accountdesk/internal/server/repositories/users"
)

// resetTokenBytes is the entropy of a reset token; the encoded token is
// twice as many hex characters.
const resetTokenBytes = 32

// ResetRequest is the outcome of a successful password reset request: the
// single-use token and its expiry. It must only ever reach the requester.
type ResetRequest struct {
	Token   string
	Expires time.Time
}

// AccountService orchestrates the account lifecycle on top of the user
// record store and the credential hasher. It holds only transient in-memory
// copies of records for the duration of one operation.
type AccountService struct {
	users              users.Repository
	resetTokenValidity time.Duration

	// now is a seam for tests that pin the clock.
	now func() time.Time
}

// NewAccountService constructs the service over the given store.
func NewAccountService(repo users.Repository, cfg *config.Config) *AccountService {
	return &AccountService{
		users:              repo,
		resetTokenValidity: cfg.ResetTokenValidityDuration,
		now:                time.Now,
	}
}

// Register creates a new account. A record whose email already exists
// (case-insensitively) yields common.ErrorDuplicateEmail. The lookup here is
// a courtesy check; the store remains the last line of defense.
func (s *AccountService) Register(ctx context.Context, email, displayName, password string) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorDuplicateEmail
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate checks an email/password pair. An unknown email and a wrong
// password both come back as common.ErrorInvalidCredentials so the result
// never reveals whether the email is registered.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, err
	}

	res, err := cryptox.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if res == cryptox.Mismatch {
		return nil, common.ErrorInvalidCredentials
	}

	// MatchStaleCost is still a match; rehashing is left for a future
	// password change.
	return user, nil
}

// RequestPasswordReset starts the reset flow for email. For an unknown email
// it performs no mutation and returns (nil, nil), the same success shape as
// the real case, so callers cannot enumerate registered emails. The returned
// token must be delivered to the requester alone.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) (*ResetRequest, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}

	token, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating reset token: %w", err)
	}

	expires := s.now().UTC().Add(s.resetTokenValidity)
	user.PasswordResetToken = token
	user.PasswordResetTokenExpires = &expires

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &ResetRequest{Token: token, Expires: expires}, nil
}

// RedeemPasswordReset consumes a pending reset token and installs a new
// password. Unknown email, no pending token, token mismatch, and passed
// expiry all come back as common.ErrorInvalidOrExpiredToken. The new hash
// and the cleared token travel in a single Update so the record can never
// be observed half-reset.
func (s *AccountService) RedeemPasswordReset(ctx context.Context, email, token, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidOrExpiredToken
		}
		return err
	}

	if !user.HasPendingReset() {
		return common.ErrorInvalidOrExpiredToken
	}
	if subtle.ConstantTimeCompare([]byte(user.PasswordResetToken), []byte(token)) != 1 {
		return common.ErrorInvalidOrExpiredToken
	}
	if user.PasswordResetTokenExpires.Before(s.now()) {
		return common.ErrorInvalidOrExpiredToken
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user.PasswordHash = hash
	user.ClearResetToken()

	return s.users.Update(ctx, user)
}

// ListUsers returns every record for the admin listing, store order.
func (s *AccountService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAll(ctx)
}
