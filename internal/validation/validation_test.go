package validation

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validWallet = "0x52908400098527886E0F7030069857D2E4169EE7"

func validCrypto() SendCryptoInput {
	return SendCryptoInput{
		Asset:             "USDC",
		Chain:             "Ethereum",
		Amount:            "10",
		DestinationWallet: validWallet,
	}
}

func TestSendCryptoInput(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SendCryptoInput)
		wantField string
		wantMsg   string
	}{
		{"valid", func(*SendCryptoInput) {}, "", ""},
		{"lower-case address", func(in *SendCryptoInput) { in.DestinationWallet = strings.ToLower(validWallet) }, "", ""},
		{"fractional amount", func(in *SendCryptoInput) { in.Amount = "0.25" }, "", ""},
		{"missing asset", func(in *SendCryptoInput) { in.Asset = "" }, "asset", "Please select an asset"},
		{"missing chain", func(in *SendCryptoInput) { in.Chain = "" }, "chain", "Please select a chain"},
		{"missing amount", func(in *SendCryptoInput) { in.Amount = "" }, "amount", "Amount is required"},
		{"letters in amount", func(in *SendCryptoInput) { in.Amount = "10abc" }, "amount", "Please enter a valid number"},
		{"lone dot", func(in *SendCryptoInput) { in.Amount = "." }, "amount", "Please enter a valid number"},
		{"missing wallet", func(in *SendCryptoInput) { in.DestinationWallet = "" }, "destinationWallet", "Wallet address is required"},
		{"wallet without prefix", func(in *SendCryptoInput) { in.DestinationWallet = validWallet[2:] }, "destinationWallet", "Please enter a valid wallet address"},
		{"short wallet", func(in *SendCryptoInput) { in.DestinationWallet = validWallet[:40] }, "destinationWallet", "Please enter a valid wallet address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCrypto()
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			errs, ok := AsErrors(err)
			require.True(t, ok, "expected field errors, got %v", err)
			assert.Equal(t, tt.wantMsg, errs[tt.wantField])
			assert.Len(t, errs, 1)
		})
	}
}

func TestChecksumAddress(t *testing.T) {
	assert.Equal(t, validWallet, ChecksumAddress(strings.ToLower(validWallet)))
	assert.Equal(t, "nope", ChecksumAddress("nope"))
}

func TestSendFiatInput(t *testing.T) {
	valid := SendFiatInput{
		RecipientType: RecipientNew,
		Currency:      DefaultCurrency,
		BankName:      "kuda",
		AccountNumber: "0346278961",
		AccountName:   "Chris Jones",
		Amount:        "25000",
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.AccountNumber = "12345"
	bad.BankName = ""
	bad.RecipientType = "other"
	errs, ok := AsErrors(bad.Validate())
	require.True(t, ok)
	assert.True(t, errs.Has("accountNumber"))
	assert.True(t, errs.Has("bankName"))
	assert.True(t, errs.Has("recipientType"))
	assert.False(t, errs.Has("amount"))
}

func TestCreateAccountInput(t *testing.T) {
	valid := CreateAccountInput{
		BusinessName: "Acme Ltd",
		FullName:     "Ada Obi",
		PhoneNumber:  "+2348012345678",
		Email:        "ada@acme.ng",
		Password:     "Secr3t!pass",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name      string
		mutate    func(*CreateAccountInput)
		wantField string
	}{
		{"short business name", func(in *CreateAccountInput) { in.BusinessName = "A" }, "businessName"},
		{"long full name", func(in *CreateAccountInput) { in.FullName = strings.Repeat("x", 101) }, "fullName"},
		{"bad phone", func(in *CreateAccountInput) { in.PhoneNumber = "0801" }, "phoneNumber"},
		{"bad email", func(in *CreateAccountInput) { in.Email = "ada" }, "email"},
		{"display-name email", func(in *CreateAccountInput) { in.Email = "Ada <ada@acme.ng>" }, "email"},
		{"short password", func(in *CreateAccountInput) { in.Password = "Aa1!" }, "password"},
		{"password without special", func(in *CreateAccountInput) { in.Password = "Secr3tpass" }, "password"},
		{"password without upper", func(in *CreateAccountInput) { in.Password = "secr3t!pass" }, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			errs, ok := AsErrors(in.Validate())
			require.True(t, ok)
			assert.True(t, errs.Has(tt.wantField), "fields: %v", errs)
		})
	}
}

func TestResetPasswordInput(t *testing.T) {
	in := ResetPasswordInput{ResetToken: "abc", Password: "Secr3t!pass", ConfirmPassword: "Secr3t!pasz"}
	errs, ok := AsErrors(in.Validate())
	require.True(t, ok)
	assert.Equal(t, "Passwords do not match", errs["confirmPassword"])

	in.ConfirmPassword = in.Password
	assert.NoError(t, in.Validate())
}

func TestLoginAndForgot(t *testing.T) {
	errs, ok := AsErrors(LoginInput{Email: "x@y.io"}.Validate())
	require.True(t, ok)
	assert.Equal(t, "Password is required", errs["password"])

	assert.Error(t, ForgotPasswordInput{Email: "nobody"}.Validate())
	assert.NoError(t, ForgotPasswordInput{Email: "nobody@vendora.io"}.Validate())
}

func TestTwoFactorInput(t *testing.T) {
	assert.NoError(t, TwoFactorInput{Code: "123456"}.Validate())
	errs, _ := AsErrors(TwoFactorInput{Code: "12345"}.Validate())
	assert.Equal(t, "Code must be 6 digits", errs["code"])
	errs, _ = AsErrors(TwoFactorInput{Code: "12345a"}.Validate())
	assert.Equal(t, "Code must contain only numbers", errs["code"])

	// counted in characters like the wizard guard, not bytes
	errs, _ = AsErrors(TwoFactorInput{Code: "１２３４５６"}.Validate())
	assert.Equal(t, "Code must contain only numbers", errs["code"])
	errs, _ = AsErrors(TwoFactorInput{Code: "１２３"}.Validate())
	assert.Equal(t, "Code must be 6 digits", errs["code"])
}

func TestBusinessVerificationInput(t *testing.T) {
	pdf := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))
	doc := &DocumentInput{Name: "cac.cert.pdf", Type: "application/pdf", Data: "data:application/pdf;base64," + pdf}

	require.NoError(t, BusinessVerificationInput{IDDocument: doc, CACDocument: doc}.Validate())

	errs, ok := AsErrors(BusinessVerificationInput{
		IDDocument:  &DocumentInput{Name: "id.gif", Type: "image/gif", Data: "data:image/gif;base64,AA=="},
		CACDocument: &DocumentInput{Name: "cac.pdf", Type: "application/pdf", Data: "not a data url"},
	}.Validate())
	require.True(t, ok)
	assert.Equal(t, "File must be PDF, PNG, JPEG or JPG", errs["idDocument"])
	assert.Equal(t, "Invalid file data", errs["cacDocument"])

	errs, _ = AsErrors(BusinessVerificationInput{}.Validate())
	assert.Equal(t, "File is required", errs["idDocument"])

	assert.Equal(t, "pdf", doc.Extension())
	mime, payload, err := doc.DecodeData()
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, "%PDF-1.4", string(payload))

	_, _, err = DocumentInput{Data: "data:text/plain,hello"}.DecodeData()
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}

func TestErrorsMessageIsSorted(t *testing.T) {
	errs := Errors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", errs.Error())

	wrapped := fmt.Errorf("submit: %w", error(errs))
	got, ok := AsErrors(wrapped)
	require.True(t, ok)
	assert.Equal(t, errs, got)
}

func TestBeneficiaryInput(t *testing.T) {
	bank := BeneficiaryInput{Kind: BeneficiaryFiat, Name: "Chris Jones", BankName: "kuda", AccountNumber: "0346278961"}
	require.NoError(t, bank.Validate())

	wallet := BeneficiaryInput{Kind: BeneficiaryCrypto, Name: "Treasury", Chain: "Ethereum", Address: validWallet}
	require.NoError(t, wallet.Validate())

	wallet.Address = "0x123"
	errs, ok := AsErrors(wallet.Validate())
	require.True(t, ok)
	assert.Equal(t, "Please enter a valid wallet address", errs["address"])

	errs, _ = AsErrors(BeneficiaryInput{Kind: "card", Name: "X"}.Validate())
	assert.True(t, errs.Has("kind"))
	assert.True(t, errs.Has("name"))
}
