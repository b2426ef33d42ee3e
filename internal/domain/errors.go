package domain

import "errors"

var (
	// ErrUserNotFound ...
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when the email is already registered
	ErrUserExists = errors.New("user already registered")
	// ErrVerificationNotFound ...
	ErrVerificationNotFound = errors.New("verification not found")
	// ErrBeneficiaryNotFound ...
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	// ErrTransactionNotFound ...
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrReferenceExists is returned when another transaction uses the reference
	ErrReferenceExists = errors.New("transaction reference already used")
)
