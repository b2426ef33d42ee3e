package service

import "net/http"

// Error is a failure the caller can act on. Status is the HTTP status the
// API answers with.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(status int, code, msg string) *Error {
	return &Error{Status: status, Code: code, Message: msg}
}

var (
	ErrUserAlreadyRegistered = newError(http.StatusConflict, "CONFLICT", "User already registered")
	ErrInvalidCredentials    = newError(http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
	ErrUserNotFound          = newError(http.StatusNotFound, "NOT_FOUND", "User not found")
	ErrInvalidResetToken     = newError(http.StatusNotFound, "NOT_FOUND", "Invalid or expired reset token")
	ErrResetTokenExpired     = newError(http.StatusBadRequest, "BAD_REQUEST", "Reset token has expired")

	ErrAlreadyVerified      = newError(http.StatusBadRequest, "BAD_REQUEST", "User is already verified")
	ErrPendingVerification  = newError(http.StatusBadRequest, "BAD_REQUEST", "You already have a pending verification")
	ErrVerificationNotFound = newError(http.StatusNotFound, "NOT_FOUND", "Verification not found")
	ErrAlreadyReviewed      = newError(http.StatusBadRequest, "BAD_REQUEST", "Verification was already reviewed")
	ErrReasonRequired       = newError(http.StatusBadRequest, "BAD_REQUEST", "A rejection reason is required")
	ErrUnknownDocument      = newError(http.StatusBadRequest, "BAD_REQUEST", "Document must be id or cac")

	ErrBeneficiaryNotFound = newError(http.StatusNotFound, "NOT_FOUND", "Beneficiary not found")
	ErrTransferNotOpen     = newError(http.StatusConflict, "CONFLICT", "Open the transfer before sending events")
	ErrTransferStep        = newError(http.StatusConflict, "CONFLICT", "Event does not belong to the current step")
	ErrUnknownCodeAction   = newError(http.StatusBadRequest, "BAD_REQUEST", "Unknown code action")
)
