package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/crypto"
	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/email"
	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/validation"
)

// Which document of a submission to open.
const (
	DocumentID  = "id"
	DocumentCAC = "cac"
)

// KeySource returns a copy of the document key. Callers clear it after use.
type KeySource func() ([]byte, error)

type VerificationService struct {
	users         domain.UserRepository
	verifications domain.VerificationRepository
	key           KeySource
	mailer        email.Mailer
	observer      Observer
	now           clock
}

func NewVerificationService(
	repo domain.RepoManager, key KeySource, mailer email.Mailer, observer Observer,
) *VerificationService {
	if mailer == nil {
		mailer = email.LogMailer{}
	}
	return &VerificationService{
		users:         repo.UserRepository(),
		verifications: repo.VerificationRepository(),
		key:           key,
		mailer:        mailer,
		observer:      observerOrNop(observer),
		now:           utcNow,
	}
}

// Submit seals both documents and records a pending verification.
func (s *VerificationService) Submit(
	ctx context.Context, userID string, in validation.BusinessVerificationInput,
) (*model.SubmitVerificationResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}

	latest, err := s.verifications.LatestForUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrVerificationNotFound) {
		return nil, err
	}
	if latest != nil && latest.IsPending() {
		return nil, ErrPendingVerification
	}

	key, err := s.key()
	if err != nil {
		return nil, err
	}
	defer clear(key)

	now := s.now()
	stamp := now.UnixMilli()
	idPath := fmt.Sprintf("verifications/%s/id_doc_%d.%s", userID, stamp, in.IDDocument.Extension())
	cacPath := fmt.Sprintf("verifications/%s/cac_doc_%d.%s", userID, stamp, in.CACDocument.Extension())

	idSealed, err := sealDocument(idPath, in.IDDocument, key)
	if err != nil {
		return nil, err
	}
	cacSealed, err := sealDocument(cacPath, in.CACDocument, key)
	if err != nil {
		return nil, err
	}

	v := &domain.DocumentVerification{
		ID:                 newID(),
		UserID:             userID,
		IDDoc:              idPath,
		CACDoc:             cacPath,
		IDDocData:          idSealed,
		CACDocData:         cacSealed,
		UploadedDocAt:      now,
		VerificationStatus: domain.VerificationPending,
		DocumentType:       domain.DocumentCACRegistration,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.verifications.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create verification record: %w", err)
	}

	s.observer.Verification(string(domain.VerificationPending))
	logging.Info("verification submitted",
		zap.String("user_id", userID),
		zap.String("verification_id", v.ID),
	)
	if err := s.mailer.Send(ctx, email.VerificationSubmitted(user.Email)); err != nil {
		logging.Warn("failed to send submission email", zap.Error(err))
	}

	return &model.SubmitVerificationResponse{
		Success:        true,
		Message:        "Verification documents submitted successfully",
		VerificationID: v.ID,
	}, nil
}

func sealDocument(path string, doc *validation.DocumentInput, key []byte) ([]byte, error) {
	mime, payload, err := doc.DecodeData()
	if err != nil {
		return nil, err
	}
	defer clear(payload)
	return crypto.SealDocument(path, mime, payload, key)
}

func (s *VerificationService) Status(ctx context.Context, userID string) (*model.VerificationStatusResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	status := &model.VerificationStatusResponse{IsVerified: user.IsVerified}
	v, err := s.verifications.LatestForUser(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrVerificationNotFound):
		return status, nil
	case err != nil:
		return nil, err
	}
	status.VerificationStatus = string(v.VerificationStatus)
	status.RejectionReason = v.RejectionReason
	return status, nil
}

// PendingForEmail returns the latest submission of the user with email.
func (s *VerificationService) PendingForEmail(ctx context.Context, addr string) (*domain.DocumentVerification, error) {
	user, err := s.users.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	v, err := s.verifications.LatestForUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return v, nil
}

// Review approves or rejects a pending submission on behalf of reviewer.
// Approval marks the user verified. Rejections need a reason.
func (s *VerificationService) Review(
	ctx context.Context, verificationID string, approve bool, reason, reviewer string,
) (*domain.DocumentVerification, error) {
	v, err := s.verifications.GetByID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	if !v.IsPending() {
		return nil, ErrAlreadyReviewed
	}
	reason = strings.TrimSpace(reason)
	if !approve && reason == "" {
		return nil, ErrReasonRequired
	}

	now := s.now()
	v.VerifiedBy = reviewer
	v.VerifiedAt = &now
	v.UpdatedAt = now
	if approve {
		v.VerificationStatus = domain.VerificationApproved
		v.IsDocVerified = true
		v.RejectionReason = ""
	} else {
		v.VerificationStatus = domain.VerificationRejected
		v.RejectionReason = reason
	}
	if err := s.verifications.Review(ctx, v); err != nil {
		return nil, err
	}

	s.observer.Verification(string(v.VerificationStatus))
	logging.Info("verification reviewed",
		zap.String("verification_id", v.ID),
		zap.String("status", string(v.VerificationStatus)),
		zap.String("reviewer", reviewer),
	)

	if user, err := s.users.GetByID(ctx, v.UserID); err == nil {
		if err := s.mailer.Send(ctx, email.VerificationResult(user.Email, approve, reason)); err != nil {
			logging.Warn("failed to send review email", zap.Error(err))
		}
	}
	return v, nil
}

// OpenDocument decrypts one document of a submission for an operator.
func (s *VerificationService) OpenDocument(
	ctx context.Context, verificationID, which string,
) (name, mimeType string, payload []byte, err error) {
	v, err := s.verifications.GetByID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationNotFound) {
			return "", "", nil, ErrVerificationNotFound
		}
		return "", "", nil, err
	}

	var sealed []byte
	switch which {
	case DocumentID:
		sealed = v.IDDocData
	case DocumentCAC:
		sealed = v.CACDocData
	default:
		return "", "", nil, ErrUnknownDocument
	}

	key, err := s.key()
	if err != nil {
		return "", "", nil, err
	}
	defer clear(key)

	doc, payload, err := crypto.OpenDocument(sealed, key)
	if err != nil {
		return "", "", nil, err
	}
	return doc.Name, doc.MimeType, payload, nil
}
