package domain

import "context"

// UserRepository persists users. Emails are unique.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// VerificationRepository persists KYC submissions.
type VerificationRepository interface {
	// Create stores v and links it to its user as the current submission.
	Create(ctx context.Context, v *DocumentVerification) error
	GetByID(ctx context.Context, id string) (*DocumentVerification, error)
	// LatestForUser returns the most recent submission of the user.
	LatestForUser(ctx context.Context, userID string) (*DocumentVerification, error)
	// Review stores the reviewed submission and, when approved, marks its
	// user as verified.
	Review(ctx context.Context, v *DocumentVerification) error
}

// BeneficiaryRepository persists saved recipients, scoped by user.
type BeneficiaryRepository interface {
	Create(ctx context.Context, b *Beneficiary) error
	Get(ctx context.Context, userID, id string) (*Beneficiary, error)
	List(ctx context.Context, userID string, kind BeneficiaryKind) ([]Beneficiary, error)
	Update(ctx context.Context, b *Beneficiary) error
	Delete(ctx context.Context, userID, id string) error
}

// TransactionRepository persists transfers, scoped by user.
type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	// List returns matching transactions, newest first.
	List(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error)
}

// RepoManager groups the repositories of one storage backend.
type RepoManager interface {
	UserRepository() UserRepository
	VerificationRepository() VerificationRepository
	BeneficiaryRepository() BeneficiaryRepository
	TransactionRepository() TransactionRepository
	Close()
}
