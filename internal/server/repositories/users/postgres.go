package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/accountdesk/internal/common"
	"github.com/dmitrijs2005/accountdesk/internal/dbx"
	"github.com/dmitrijs2005/accountdesk/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code raised when the unique index
// on lower(email) rejects an insert. The index is the authoritative
// duplicate guard; the lifecycle service's lookup is only a courtesy check.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over a users table via dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func storageErr(err error) error {
	return fmt.Errorf("%w: db error: %v", common.ErrorStorageUnavailable, err)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, COALESCE(display_name, ''), password_hash,
		       COALESCE(password_reset_token, ''), password_reset_token_expires, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`

	user := &models.User{}
	var expires sql.NullTime
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.PasswordResetToken, &expires, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, storageErr(err)
	}

	if expires.Valid {
		t := expires.Time
		user.PasswordResetTokenExpires = &t
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, display_name, password_hash,
		                   password_reset_token, password_reset_token_expires, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.DisplayName, user.PasswordHash,
		user.PasswordResetToken, user.PasswordResetTokenExpires, user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorDuplicateEmail
		}
		return storageErr(err)
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, display_name = NULLIF($3, ''), password_hash = $4,
		    password_reset_token = NULLIF($5, ''), password_reset_token_expires = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.DisplayName, user.PasswordHash,
		user.PasswordResetToken, user.PasswordResetTokenExpires)
	if err != nil {
		return storageErr(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, email, COALESCE(display_name, ''), password_hash,
		       COALESCE(password_reset_token, ''), password_reset_token_expires, created_at
		FROM users
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		var expires sql.NullTime
		if err := rows.Scan(
			&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
			&user.PasswordResetToken, &expires, &user.CreatedAt); err != nil {
			return nil, storageErr(err)
		}
		if expires.Valid {
			t := expires.Time
			user.PasswordResetTokenExpires = &t
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, user *models.User) error {
	query := `
		DELETE FROM users
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, user.ID)
	if err != nil {
		return storageErr(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
