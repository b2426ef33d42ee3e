package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/validation"
)

func newAuthService(t *testing.T) (*AuthService, *recordingMailer, *countingObserver) {
	t.Helper()
	mailer := &recordingMailer{}
	observer := &countingObserver{}
	svc := NewAuthService(newRepo(t), newTestIssuer(t), mailer, "http://localhost:3000", observer)
	svc.now = fixedClock
	return svc, mailer, observer
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, observer := newAuthService(t)

	session, err := svc.Register(ctx, registerInput("ada@acme.ng"))
	require.NoError(t, err)
	assert.True(t, session.Success)
	assert.True(t, session.RequiresVerification)
	require.NotEmpty(t, session.Token)

	claims, err := svc.issuer.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "ada@acme.ng", claims.Email)

	_, err = svc.Register(ctx, registerInput("ADA@acme.ng"))
	assert.ErrorIs(t, err, ErrUserAlreadyRegistered)

	_, err = svc.Login(ctx, validation.LoginInput{Email: "ada@acme.ng", Password: "Wr0ng!pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, validation.LoginInput{Email: "nobody@acme.ng", Password: testPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	session, err = svc.Login(ctx, validation.LoginInput{Email: "ada@acme.ng", Password: testPassword})
	require.NoError(t, err)
	assert.True(t, session.Success)

	assert.Equal(t, 1, observer.registered)
	assert.Equal(t, 1, observer.loginOK)
	assert.Equal(t, 2, observer.loginFailed)

	me, err := svc.CurrentUser(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", me.Name)
	assert.Equal(t, "Acme Ltd", me.BusinessName)
	assert.False(t, me.IsVerified)
	assert.Equal(t, testNow, me.CreatedAt)

	_, err = svc.CurrentUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService(t)
	in := registerInput("ada")
	_, err := svc.Register(context.Background(), in)
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has("email"))
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newAuthService(t)
	_, err := svc.Register(ctx, registerInput("ada@acme.ng"))
	require.NoError(t, err)

	err = svc.ForgotPassword(ctx, validation.ForgotPasswordInput{Email: "nobody@acme.ng"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.ForgotPassword(ctx, validation.ForgotPasswordInput{Email: "ada@acme.ng"}))
	msg := mailer.last()
	assert.Equal(t, "ada@acme.ng", msg.To)

	user, err := svc.users.GetByEmail(ctx, "ada@acme.ng")
	require.NoError(t, err)
	token := user.ResetPasswordCode
	assert.Len(t, token, 64)
	assert.True(t, strings.Contains(msg.Text, "http://localhost:3000/password/reset/"+token))
	require.NotNil(t, user.ResetPasswordExpires)
	assert.Equal(t, testNow.Add(time.Hour), *user.ResetPasswordExpires)

	newPassword := "N3w!password"
	reset := validation.ResetPasswordInput{ResetToken: "nope", Password: newPassword, ConfirmPassword: newPassword}
	assert.ErrorIs(t, svc.ResetPassword(ctx, reset), ErrInvalidResetToken)

	reset.ResetToken = token
	svc.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	assert.ErrorIs(t, svc.ResetPassword(ctx, reset), ErrResetTokenExpired)

	svc.now = fixedClock
	require.NoError(t, svc.ResetPassword(ctx, reset))

	user, err = svc.users.GetByEmail(ctx, "ada@acme.ng")
	require.NoError(t, err)
	assert.Empty(t, user.ResetPasswordCode)
	assert.Nil(t, user.ResetPasswordExpires)
	assert.True(t, auth.CheckPassword(user.PasswordHash, newPassword))

	assert.ErrorIs(t, svc.ResetPassword(ctx, reset), ErrInvalidResetToken, "tokens are single use")
}

func TestForgotPasswordMailFailure(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newAuthService(t)
	_, err := svc.Register(ctx, registerInput("ada@acme.ng"))
	require.NoError(t, err)

	mailer.err = errors.New("smtp down")
	assert.Error(t, svc.ForgotPassword(ctx, validation.ForgotPasswordInput{Email: "ada@acme.ng"}))
}
