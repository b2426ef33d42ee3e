package postgresdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/AlexZinkM/vendora/internal/domain"
)

const userColumns = `id, email, name, business_name, phone_number, password_hash,
	is_verified, COALESCE(document_verification_id, ''), COALESCE(reset_password_code, ''),
	reset_password_expires, created_at, updated_at`

type userRepositoryImpl struct {
	db querier
}

func (r userRepositoryImpl) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (id, email, name, business_name, phone_number,
		password_hash, is_verified, document_verification_id, reset_password_code,
		reset_password_expires, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		u.ID, u.Email, u.Name, u.BusinessName, u.PhoneNumber, u.PasswordHash, u.IsVerified,
		nullable(u.DocumentVerificationID), nullable(u.ResetPasswordCode), u.ResetPasswordExpires,
		u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrUserExists
	}
	return err
}

func (r userRepositoryImpl) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r userRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (r userRepositoryImpl) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE reset_password_code = $1`, token))
}

func (r userRepositoryImpl) Update(ctx context.Context, u *domain.User) error {
	return updateUser(ctx, r.db, u)
}

func updateUser(ctx context.Context, db querier, u *domain.User) error {
	tag, err := db.Exec(ctx, `UPDATE users SET email = $2, name = $3, business_name = $4,
		phone_number = $5, password_hash = $6, is_verified = $7, document_verification_id = $8,
		reset_password_code = $9, reset_password_expires = $10, updated_at = $11
		WHERE id = $1`,
		u.ID, u.Email, u.Name, u.BusinessName, u.PhoneNumber, u.PasswordHash, u.IsVerified,
		nullable(u.DocumentVerificationID), nullable(u.ResetPasswordCode), u.ResetPasswordExpires,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.BusinessName, &u.PhoneNumber, &u.PasswordHash,
		&u.IsVerified, &u.DocumentVerificationID, &u.ResetPasswordCode,
		&u.ResetPasswordExpires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
