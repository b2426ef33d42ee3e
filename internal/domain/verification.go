package domain

import "time"

// DocumentType is the kind of identity document on file.
type DocumentType string

const (
	DocumentIDCard          DocumentType = "id_card"
	DocumentPassport        DocumentType = "passport"
	DocumentDriversLicense  DocumentType = "drivers_license"
	DocumentNationalID      DocumentType = "national_id"
	DocumentVotersCard      DocumentType = "voters_card"
	DocumentCACRegistration DocumentType = "cac_registration"
	DocumentOther           DocumentType = "other"
)

// VerificationStatus is the review state of a KYC submission.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// DocumentVerification is one KYC submission. Document payloads are sealed
// before they reach this struct.
type DocumentVerification struct {
	ID                 string
	UserID             string
	IDDoc              string
	CACDoc             string
	IDDocData          []byte
	CACDocData         []byte
	UploadedDocAt      time.Time
	IsDocVerified      bool
	VerificationStatus VerificationStatus
	RejectionReason    string
	VerifiedBy         string
	VerifiedAt         *time.Time
	DocumentType       DocumentType
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsPending reports whether the submission still awaits review.
func (v DocumentVerification) IsPending() bool {
	return v.VerificationStatus == VerificationPending
}
