package postgresdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/AlexZinkM/vendora/internal/domain"
)

const verificationColumns = `id, user_id, id_doc, cac_doc, id_doc_data, cac_doc_data,
	uploaded_doc_at, is_doc_verified, verification_status, COALESCE(rejection_reason, ''),
	COALESCE(verified_by, ''), verified_at, document_type, created_at, updated_at`

type verificationRepositoryImpl struct {
	db     querier
	execTx execTxFunc
}

func (r verificationRepositoryImpl) Create(ctx context.Context, v *domain.DocumentVerification) error {
	return r.execTx(ctx, func(q querier) error {
		if _, err := q.Exec(ctx, `INSERT INTO document_verifications (id, user_id, id_doc, cac_doc,
			id_doc_data, cac_doc_data, uploaded_doc_at, is_doc_verified, verification_status,
			rejection_reason, verified_by, verified_at, document_type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			v.ID, v.UserID, v.IDDoc, v.CACDoc, v.IDDocData, v.CACDocData, v.UploadedDocAt,
			v.IsDocVerified, string(v.VerificationStatus), nullable(v.RejectionReason),
			nullable(v.VerifiedBy), v.VerifiedAt, string(v.DocumentType), v.CreatedAt, v.UpdatedAt,
		); err != nil {
			return err
		}

		tag, err := q.Exec(ctx, `UPDATE users SET document_verification_id = $2 WHERE id = $1`, v.UserID, v.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

func (r verificationRepositoryImpl) GetByID(ctx context.Context, id string) (*domain.DocumentVerification, error) {
	return scanVerification(r.db.QueryRow(ctx,
		`SELECT `+verificationColumns+` FROM document_verifications WHERE id = $1`, id))
}

func (r verificationRepositoryImpl) LatestForUser(ctx context.Context, userID string) (*domain.DocumentVerification, error) {
	return scanVerification(r.db.QueryRow(ctx,
		`SELECT `+verificationColumns+` FROM document_verifications
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID))
}

func (r verificationRepositoryImpl) Review(ctx context.Context, v *domain.DocumentVerification) error {
	return r.execTx(ctx, func(q querier) error {
		tag, err := q.Exec(ctx, `UPDATE document_verifications SET is_doc_verified = $2,
			verification_status = $3, rejection_reason = $4, verified_by = $5, verified_at = $6,
			updated_at = $7 WHERE id = $1`,
			v.ID, v.IsDocVerified, string(v.VerificationStatus), nullable(v.RejectionReason),
			nullable(v.VerifiedBy), v.VerifiedAt, v.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrVerificationNotFound
		}
		if v.VerificationStatus != domain.VerificationApproved {
			return nil
		}

		_, err = q.Exec(ctx, `UPDATE users SET is_verified = TRUE, updated_at = $2 WHERE id = $1`,
			v.UserID, v.UpdatedAt)
		return err
	})
}

func scanVerification(row pgx.Row) (*domain.DocumentVerification, error) {
	var (
		v       domain.DocumentVerification
		status  string
		docType string
	)
	err := row.Scan(
		&v.ID, &v.UserID, &v.IDDoc, &v.CACDoc, &v.IDDocData, &v.CACDocData,
		&v.UploadedDocAt, &v.IsDocVerified, &status, &v.RejectionReason,
		&v.VerifiedBy, &v.VerifiedAt, &docType, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVerificationNotFound
		}
		return nil, err
	}
	v.VerificationStatus = domain.VerificationStatus(status)
	v.DocumentType = domain.DocumentType(docType)
	return &v, nil
}
