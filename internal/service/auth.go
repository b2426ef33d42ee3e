package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thanhpk/randstr"
	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/email"
	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/validation"
)

// ResetTokenTTL is how long a password reset link stays usable.
const ResetTokenTTL = time.Hour

type AuthService struct {
	users    domain.UserRepository
	issuer   *auth.Issuer
	mailer   email.Mailer
	appURL   string
	observer Observer
	now      clock
}

func NewAuthService(
	repo domain.RepoManager, issuer *auth.Issuer, mailer email.Mailer,
	appURL string, observer Observer,
) *AuthService {
	if mailer == nil {
		mailer = email.LogMailer{}
	}
	return &AuthService{
		users:    repo.UserRepository(),
		issuer:   issuer,
		mailer:   mailer,
		appURL:   appURL,
		observer: observerOrNop(observer),
		now:      utcNow,
	}
}

func (s *AuthService) Register(ctx context.Context, in validation.CreateAccountInput) (*model.SessionResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrUserAlreadyRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		ID:           newID(),
		Email:        in.Email,
		Name:         in.FullName,
		BusinessName: in.BusinessName,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, ErrUserAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.observer.Registered()
	logging.Info("user registered", zap.String("user_id", user.ID))
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, in validation.LoginInput) (*model.SessionResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.observer.LoggedIn(false)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		s.observer.LoggedIn(false)
		return nil, ErrInvalidCredentials
	}

	s.observer.LoggedIn(true)
	return s.session(user)
}

func (s *AuthService) session(user *domain.User) (*model.SessionResponse, error) {
	token, expires, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.SessionResponse{
		Success:              true,
		RequiresVerification: !user.IsVerified,
		Token:                token,
		ExpiresAt:            expires,
	}, nil
}

// ForgotPassword stores a one hour reset token and emails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, in validation.ForgotPasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := s.now()
	expires := now.Add(ResetTokenTTL)
	user.ResetPasswordCode = randstr.Hex(32)
	user.ResetPasswordExpires = &expires
	user.UpdatedAt = now
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return s.mailer.Send(ctx, email.PasswordReset(user.Email, s.appURL, user.ResetPasswordCode))
}

func (s *AuthService) ResetPassword(ctx context.Context, in validation.ResetPasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetByResetToken(ctx, in.ResetToken)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	now := s.now()
	if !user.ResetTokenValid(now) {
		return ErrResetTokenExpired
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.ResetPasswordCode = ""
	user.ResetPasswordExpires = nil
	user.UpdatedAt = now
	return s.users.Update(ctx, user)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &model.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		BusinessName: user.BusinessName,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}, nil
}
