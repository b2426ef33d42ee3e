package model

import (
	"time"

	"github.com/AlexZinkM/vendora/internal/common"
	"github.com/AlexZinkM/vendora/internal/domain"
)

// Transaction represents a recorded transfer
type Transaction struct {
	ID            string    `json:"id"`
	Reference     string    `json:"reference"`
	Kind          string    `json:"kind"`
	Direction     string    `json:"direction"`
	Status        string    `json:"status"`
	Asset         string    `json:"asset,omitempty"`
	Chain         string    `json:"chain,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	Amount        string    `json:"amount"`
	Fee           string    `json:"fee"`
	Counterparty  string    `json:"counterparty,omitempty"`
	BankName      string    `json:"bankName,omitempty"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewTransaction renders tx with amounts in the precision of their unit.
func NewTransaction(tx domain.Transaction) Transaction {
	unit := tx.Asset
	if tx.Kind == domain.TransactionFiat {
		unit = tx.Currency
	}
	return Transaction{
		ID:            tx.ID,
		Reference:     tx.Reference,
		Kind:          string(tx.Kind),
		Direction:     string(tx.Direction),
		Status:        string(tx.Status),
		Asset:         tx.Asset,
		Chain:         tx.Chain,
		Currency:      tx.Currency,
		Amount:        common.FormatAmount(tx.Amount, unit),
		Fee:           common.FormatAmount(tx.Fee, tx.Asset),
		Counterparty:  tx.Counterparty,
		BankName:      tx.BankName,
		AccountNumber: tx.AccountNumber,
		Address:       tx.Address,
		CreatedAt:     tx.CreatedAt,
	}
}

// TransactionListResponse represents response for GET /wallet/transactions
type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
}
