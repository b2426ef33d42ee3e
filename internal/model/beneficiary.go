package model

import (
	"time"

	"github.com/AlexZinkM/vendora/internal/domain"
)

// Beneficiary represents a saved recipient
type Beneficiary struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Name          string    `json:"name"`
	BankName      string    `json:"bankName,omitempty"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	Chain         string    `json:"chain,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewBeneficiary(b domain.Beneficiary) Beneficiary {
	return Beneficiary{
		ID:            b.ID,
		Kind:          string(b.Kind),
		Name:          b.Name,
		BankName:      b.BankName,
		AccountNumber: b.AccountNumber,
		Chain:         b.Chain,
		Address:       b.Address,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// BeneficiaryListResponse represents response for GET /wallet/beneficiaries
type BeneficiaryListResponse struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}
