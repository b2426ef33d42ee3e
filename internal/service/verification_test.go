package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/validation"
)

var (
	pdfPayload = []byte("%PDF-1.4 certificate")
	pngPayload = []byte("\x89PNG id card")
)

func verificationInput() validation.BusinessVerificationInput {
	return validation.BusinessVerificationInput{
		IDDocument:  &validation.DocumentInput{Name: "passport.png", Type: "image/png", Data: dataURL("image/png", pngPayload)},
		CACDocument: &validation.DocumentInput{Name: "cac.pdf", Type: "application/pdf", Data: dataURL("application/pdf", pdfPayload)},
	}
}

func newVerificationService(t *testing.T) (*VerificationService, domain.RepoManager, *recordingMailer, *countingObserver) {
	t.Helper()
	repo := newRepo(t)
	mailer := &recordingMailer{}
	observer := &countingObserver{}
	key := func() ([]byte, error) { return []byte("document-key"), nil }
	svc := NewVerificationService(repo, key, mailer, observer)
	svc.now = fixedClock
	return svc, repo, mailer, observer
}

func TestSubmitVerification(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, observer := newVerificationService(t)
	userID := seedUser(t, repo, "ada@acme.ng")

	_, err := svc.Submit(ctx, "missing", verificationInput())
	assert.ErrorIs(t, err, ErrUserNotFound)

	res, err := svc.Submit(ctx, userID, verificationInput())
	require.NoError(t, err)
	assert.True(t, res.Success)

	v, err := repo.VerificationRepository().GetByID(ctx, res.VerificationID)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationPending, v.VerificationStatus)
	assert.Equal(t, domain.DocumentCACRegistration, v.DocumentType)
	assert.Equal(t, "verifications/"+userID+"/id_doc_1709294400000.png", v.IDDoc)
	assert.Equal(t, "verifications/"+userID+"/cac_doc_1709294400000.pdf", v.CACDoc)
	assert.NotContains(t, string(v.CACDocData), string(pdfPayload))

	user, err := repo.UserRepository().GetByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, v.ID, user.DocumentVerificationID)

	_, err = svc.Submit(ctx, userID, verificationInput())
	assert.ErrorIs(t, err, ErrPendingVerification)

	name, mime, payload, err := svc.OpenDocument(ctx, v.ID, DocumentCAC)
	require.NoError(t, err)
	assert.Equal(t, v.CACDoc, name)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, pdfPayload, payload)

	_, _, _, err = svc.OpenDocument(ctx, v.ID, "selfie")
	assert.ErrorIs(t, err, ErrUnknownDocument)

	assert.Equal(t, []string{"pending"}, observer.verifications)
}

func TestReviewVerification(t *testing.T) {
	ctx := context.Background()
	svc, repo, mailer, _ := newVerificationService(t)
	userID := seedUser(t, repo, "ada@acme.ng")

	res, err := svc.Submit(ctx, userID, verificationInput())
	require.NoError(t, err)

	_, err = svc.Review(ctx, res.VerificationID, false, "  ", "ops@vendora.io")
	assert.ErrorIs(t, err, ErrReasonRequired)

	v, err := svc.Review(ctx, res.VerificationID, false, "Blurry scan", "ops@vendora.io")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationRejected, v.VerificationStatus)
	assert.Equal(t, "ops@vendora.io", v.VerifiedBy)
	require.NotNil(t, v.VerifiedAt)
	assert.Contains(t, mailer.last().Text, "Blurry scan")

	_, err = svc.Review(ctx, res.VerificationID, true, "", "ops@vendora.io")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.False(t, status.IsVerified)
	assert.Equal(t, "rejected", status.VerificationStatus)
	assert.Equal(t, "Blurry scan", status.RejectionReason)

	// a rejected user may submit again
	res, err = svc.Submit(ctx, userID, verificationInput())
	require.NoError(t, err)

	latest, err := svc.PendingForEmail(ctx, "ada@acme.ng")
	require.NoError(t, err)
	assert.Equal(t, res.VerificationID, latest.ID)

	_, err = svc.Review(ctx, res.VerificationID, true, "", "ops@vendora.io")
	require.NoError(t, err)

	status, err = svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.True(t, status.IsVerified)
	assert.Equal(t, "approved", status.VerificationStatus)

	_, err = svc.Submit(ctx, userID, verificationInput())
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerificationStatusWithoutSubmission(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newVerificationService(t)
	userID := seedUser(t, repo, "ada@acme.ng")

	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.False(t, status.IsVerified)
	assert.Empty(t, status.VerificationStatus)

	_, err = svc.PendingForEmail(ctx, "ada@acme.ng")
	assert.ErrorIs(t, err, ErrVerificationNotFound)
}
