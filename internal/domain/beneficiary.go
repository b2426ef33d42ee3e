package domain

import "time"

// BeneficiaryKind separates bank accounts from crypto wallets.
type BeneficiaryKind string

const (
	BeneficiaryFiat   BeneficiaryKind = "fiat"
	BeneficiaryCrypto BeneficiaryKind = "crypto"
)

// Beneficiary is a saved transfer recipient.
type Beneficiary struct {
	ID            string
	UserID        string
	Kind          BeneficiaryKind
	Name          string
	BankName      string
	AccountNumber string
	Chain         string
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
