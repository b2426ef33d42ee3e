package validation

import "unicode/utf8"

// Beneficiary kinds accepted by BeneficiaryInput.
const (
	BeneficiaryFiat   = "fiat"
	BeneficiaryCrypto = "crypto"
)

// BeneficiaryInput creates or edits a saved recipient. Fiat recipients need a
// bank account, crypto recipients a chain and wallet address.
type BeneficiaryInput struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Chain         string `json:"chain,omitempty"`
	Address       string `json:"address,omitempty"`
}

// Validate checks the recipient for its kind.
func (in BeneficiaryInput) Validate() error {
	errs := Errors{}
	lengthBetween(errs, "name", in.Name, 2, 100, "Name")

	switch in.Kind {
	case BeneficiaryFiat:
		if in.BankName == "" {
			errs.add("bankName", "Bank name is required")
		}
		if utf8.RuneCountInString(in.AccountNumber) != 10 {
			errs.add("accountNumber", "Account number must be 10 digits")
		}
	case BeneficiaryCrypto:
		if in.Chain == "" {
			errs.add("chain", "Please select a chain")
		}
		switch {
		case in.Address == "":
			errs.add("address", "Wallet address is required")
		case !walletPattern.MatchString(in.Address):
			errs.add("address", "Please enter a valid wallet address")
		}
	default:
		errs.add("kind", "Kind must be fiat or crypto")
	}
	return errs.orNil()
}
