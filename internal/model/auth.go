package model

import "time"

// SessionResponse represents response for POST /auth/register and /auth/login
type SessionResponse struct {
	Success              bool      `json:"success"`
	RequiresVerification bool      `json:"requiresVerification"`
	Token                string    `json:"token"`
	ExpiresAt            time.Time `json:"-"`
}

// UserResponse represents response for GET /auth/me
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	BusinessName string    `json:"businessName"`
	IsVerified   bool      `json:"isVerified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MessageResponse acknowledges a command with a message for the user
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitVerificationResponse represents response for POST /verification/business
type SubmitVerificationResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	VerificationID string `json:"verificationId"`
}

// VerificationStatusResponse represents response for GET /verification/status
type VerificationStatusResponse struct {
	IsVerified         bool   `json:"isVerified"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
	RejectionReason    string `json:"rejectionReason,omitempty"`
}
