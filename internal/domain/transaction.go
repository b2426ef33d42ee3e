package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is either crypto or fiat.
type TransactionKind string

const (
	TransactionCrypto TransactionKind = "crypto"
	TransactionFiat   TransactionKind = "fiat"
)

// Direction of funds relative to the account holder.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// TransactionStatus ...
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is a transfer recorded for a user. Amount and Fee are in the
// unit of Asset (crypto) or Currency (fiat).
type Transaction struct {
	ID            string
	UserID        string
	Reference     string
	Kind          TransactionKind
	Direction     Direction
	Status        TransactionStatus
	Asset         string
	Chain         string
	Currency      string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	Counterparty  string
	BankName      string
	AccountNumber string
	Address       string
	CreatedAt     time.Time
}

// TransactionFilter narrows a transaction listing. Zero values match all.
type TransactionFilter struct {
	Kind TransactionKind
	From *time.Time
	To   *time.Time
}

// Match reports whether tx passes the filter. Date bounds are inclusive.
func (f TransactionFilter) Match(tx Transaction) bool {
	if f.Kind != "" && tx.Kind != f.Kind {
		return false
	}
	if f.From != nil && tx.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && tx.CreatedAt.After(*f.To) {
		return false
	}
	return true
}
