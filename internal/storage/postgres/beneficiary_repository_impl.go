package postgresdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/AlexZinkM/vendora/internal/domain"
)

const beneficiaryColumns = `id, user_id, kind, name, COALESCE(bank_name, ''),
	COALESCE(account_number, ''), COALESCE(chain, ''), COALESCE(address, ''),
	created_at, updated_at`

type beneficiaryRepositoryImpl struct {
	db querier
}

func (r beneficiaryRepositoryImpl) Create(ctx context.Context, b *domain.Beneficiary) error {
	_, err := r.db.Exec(ctx, `INSERT INTO beneficiaries (id, user_id, kind, name, bank_name,
		account_number, chain, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.UserID, string(b.Kind), b.Name, nullable(b.BankName), nullable(b.AccountNumber),
		nullable(b.Chain), nullable(b.Address), b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r beneficiaryRepositoryImpl) Get(ctx context.Context, userID, id string) (*domain.Beneficiary, error) {
	b, err := scanBeneficiary(r.db.QueryRow(ctx,
		`SELECT `+beneficiaryColumns+` FROM beneficiaries WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBeneficiaryNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r beneficiaryRepositoryImpl) List(ctx context.Context, userID string, kind domain.BeneficiaryKind) ([]domain.Beneficiary, error) {
	rows, err := r.db.Query(ctx, `SELECT `+beneficiaryColumns+` FROM beneficiaries
		WHERE user_id = $1 AND ($2::text = '' OR kind = $2::text) ORDER BY created_at ASC`,
		userID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Beneficiary, 0)
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	return result, rows.Err()
}

func (r beneficiaryRepositoryImpl) Update(ctx context.Context, b *domain.Beneficiary) error {
	tag, err := r.db.Exec(ctx, `UPDATE beneficiaries SET kind = $3, name = $4, bank_name = $5,
		account_number = $6, chain = $7, address = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2`,
		b.ID, b.UserID, string(b.Kind), b.Name, nullable(b.BankName), nullable(b.AccountNumber),
		nullable(b.Chain), nullable(b.Address), b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBeneficiaryNotFound
	}
	return nil
}

func (r beneficiaryRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM beneficiaries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBeneficiaryNotFound
	}
	return nil
}

func scanBeneficiary(row pgx.Row) (*domain.Beneficiary, error) {
	var (
		b    domain.Beneficiary
		kind string
	)
	if err := row.Scan(
		&b.ID, &b.UserID, &kind, &b.Name, &b.BankName, &b.AccountNumber,
		&b.Chain, &b.Address, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Kind = domain.BeneficiaryKind(kind)
	return &b, nil
}
