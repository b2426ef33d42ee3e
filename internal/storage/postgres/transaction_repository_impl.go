package postgresdb

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type transactionRepositoryImpl struct {
	db querier
}

func (r transactionRepositoryImpl) Create(ctx context.Context, tx *domain.Transaction) error {
	_, err := r.db.Exec(ctx, `INSERT INTO transactions (id, user_id, reference, kind, direction,
		status, asset, chain, currency, amount, fee, counterparty, bank_name, account_number,
		address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11::numeric, $12, $13, $14, $15, $16)`,
		tx.ID, tx.UserID, tx.Reference, string(tx.Kind), string(tx.Direction), string(tx.Status),
		nullable(tx.Asset), nullable(tx.Chain), nullable(tx.Currency),
		tx.Amount.String(), tx.Fee.String(), nullable(tx.Counterparty), nullable(tx.BankName),
		nullable(tx.AccountNumber), nullable(tx.Address), tx.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrReferenceExists
	}
	return err
}

func (r transactionRepositoryImpl) List(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_id, reference, kind, direction, status,
		COALESCE(asset, ''), COALESCE(chain, ''), COALESCE(currency, ''),
		amount::text, fee::text, COALESCE(counterparty, ''), COALESCE(bank_name, ''),
		COALESCE(account_number, ''), COALESCE(address, ''), created_at
		FROM transactions
		WHERE user_id = $1
			AND ($2::text = '' OR kind = $2::text)
			AND ($3::timestamptz IS NULL OR created_at >= $3)
			AND ($4::timestamptz IS NULL OR created_at <= $4)
		ORDER BY created_at DESC`,
		userID, string(filter.Kind), filter.From, filter.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			tx                      domain.Transaction
			kind, direction, status string
			amount, fee             string
		)
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.Reference, &kind, &direction, &status,
			&tx.Asset, &tx.Chain, &tx.Currency, &amount, &fee, &tx.Counterparty,
			&tx.BankName, &tx.AccountNumber, &tx.Address, &tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		tx.Kind = domain.TransactionKind(kind)
		tx.Direction = domain.Direction(direction)
		tx.Status = domain.TransactionStatus(status)
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		if tx.Fee, err = decimal.NewFromString(fee); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}
