package validation

import "unicode/utf8"

// RecipientType tells whether a fiat transfer goes to a saved beneficiary or
// to a bank account entered by hand.
type RecipientType string

const (
	RecipientSaved RecipientType = "saved"
	RecipientNew   RecipientType = "new"
)

// DefaultCurrency is the only fiat currency offered.
const DefaultCurrency = "NGN"

// SendFiatInput is the details step of the fiat transfer.
type SendFiatInput struct {
	RecipientType RecipientType `json:"recipientType"`
	Currency      string        `json:"currency"`
	BankName      string        `json:"bankName"`
	AccountNumber string        `json:"accountNumber"`
	AccountName   string        `json:"accountName"`
	Amount        string        `json:"amount"`
}

// Validate checks the fiat transfer details.
func (in SendFiatInput) Validate() error {
	errs := Errors{}
	if in.RecipientType != RecipientSaved && in.RecipientType != RecipientNew {
		errs.add("recipientType", "Recipient must be saved or new")
	}
	if in.Currency == "" {
		errs.add("currency", "Please select a currency")
	}
	if in.BankName == "" {
		errs.add("bankName", "Please select a bank")
	}
	if utf8.RuneCountInString(in.AccountNumber) != 10 {
		errs.add("accountNumber", "Account number must be 10 digits")
	}
	if in.AccountName == "" {
		errs.add("accountName", "Account name is required")
	}
	amount(errs, "amount", in.Amount)
	return errs.orNil()
}
