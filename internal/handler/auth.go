package handler

import (
	"net/http"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/service"
	"github.com/AlexZinkM/vendora/internal/validation"
)

// AuthHandler serves registration, login and password recovery
type AuthHandler struct {
	svc          *service.AuthService
	secureCookie bool
}

func NewAuthHandler(svc *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

// Register handles POST /auth/register
// @Summary      Create an account
// @Description  Registers a business account and starts a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      validation.CreateAccountInput  true  "Account data"
// @Success      201      {object}  model.SessionResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in validation.CreateAccountInput
	if !decode(w, r, &in) {
		return
	}

	session, err := h.svc.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, session.Token, session.ExpiresAt, h.secureCookie)
	writeJSON(w, http.StatusCreated, session)
}

// Login handles POST /auth/login
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      validation.LoginInput  true  "Credentials"
// @Success      200      {object}  model.SessionResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in validation.LoginInput
	if !decode(w, r, &in) {
		return
	}

	session, err := h.svc.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, session.Token, session.ExpiresAt, h.secureCookie)
	writeJSON(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.SuccessResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.secureCookie)
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true})
}

// ForgotPassword handles POST /auth/password/forgot
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      validation.ForgotPasswordInput  true  "Account email"
// @Success      200      {object}  model.MessageResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in validation.ForgotPasswordInput
	if !decode(w, r, &in) {
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Password reset link sent to your email",
	})
}

// ResetPassword handles POST /auth/password/reset
// @Summary      Set a new password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      validation.ResetPasswordInput  true  "Reset token and new password"
// @Success      200      {object}  model.MessageResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in validation.ResetPasswordInput
	if !decode(w, r, &in) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{
		Success: true,
		Message: "Password reset successful",
	})
}

// Me handles GET /auth/me
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.UserResponse
// @Failure      401  {object}  model.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.CurrentUser(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
