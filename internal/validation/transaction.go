package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
)

var (
	amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)
	walletPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	codePattern   = regexp.MustCompile(`^\d+$`)
)

// SendCryptoInput is the details step of the crypto transfer.
type SendCryptoInput struct {
	Asset             string `json:"asset"`
	Chain             string `json:"chain"`
	Amount            string `json:"amount"`
	DestinationWallet string `json:"destinationWallet"`
	SaveBeneficiary   bool   `json:"saveBeneficiary"`
}

// Validate checks the crypto transfer details.
func (in SendCryptoInput) Validate() error {
	errs := Errors{}
	if in.Asset == "" {
		errs.add("asset", "Please select an asset")
	}
	if in.Chain == "" {
		errs.add("chain", "Please select a chain")
	}
	amount(errs, "amount", in.Amount)
	switch {
	case in.DestinationWallet == "":
		errs.add("destinationWallet", "Wallet address is required")
	case !walletPattern.MatchString(in.DestinationWallet) || !common.IsHexAddress(in.DestinationWallet):
		errs.add("destinationWallet", "Please enter a valid wallet address")
	}
	return errs.orNil()
}

// ChecksumAddress renders an EVM address in its mixed-case checksum form.
func ChecksumAddress(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	return common.HexToAddress(addr).Hex()
}

// TwoFactorInput carries the authenticator code.
type TwoFactorInput struct {
	Code string `json:"code"`
}

// Validate checks the authenticator code.
func (in TwoFactorInput) Validate() error {
	errs := Errors{}
	switch {
	case utf8.RuneCountInString(in.Code) != 6:
		errs.add("code", "Code must be 6 digits")
	case !codePattern.MatchString(in.Code):
		errs.add("code", "Code must contain only numbers")
	}
	return errs.orNil()
}

// ReceiveCryptoInput selects the asset and chain to fund.
type ReceiveCryptoInput struct {
	Asset string `json:"asset"`
	Chain string `json:"chain"`
}

// Validate checks the receive form.
func (in ReceiveCryptoInput) Validate() error {
	errs := Errors{}
	if in.Asset == "" {
		errs.add("asset", "Please select an asset")
	}
	if in.Chain == "" {
		errs.add("chain", "Please select a chain")
	}
	return errs.orNil()
}

// amount accepts plain decimal strings such as "10", "0.5" or "12.".
func amount(errs Errors, field, value string) {
	if value == "" {
		errs.add(field, "Amount is required")
		return
	}
	if !amountPattern.MatchString(value) || strings.Trim(value, ".") == "" {
		errs.add(field, "Please enter a valid number")
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
