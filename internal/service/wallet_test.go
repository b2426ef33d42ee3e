package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/validation"
)

const depositAddress = "0x52908400098527886e0f7030069857d2e4169ee7"

func newWalletService(t *testing.T, rates RateSource) (*WalletService, domain.RepoManager, *countingObserver) {
	t.Helper()
	repo := newRepo(t)
	observer := &countingObserver{}
	svc := NewWalletService(repo, rates, depositAddress, observer)
	svc.now = fixedClock
	return svc, repo, observer
}

func addTransaction(t *testing.T, repo domain.RepoManager, tx domain.Transaction) {
	t.Helper()
	tx.ID = newID()
	tx.Reference = newReference()
	if tx.Asset == "" {
		tx.Asset = "USDC"
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = testNow
	}
	require.NoError(t, repo.TransactionRepository().Create(context.Background(), &tx))
}

func TestBeneficiaries(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newWalletService(t, nil)

	bank, err := svc.CreateBeneficiary(ctx, "u1", validation.BeneficiaryInput{
		Kind: validation.BeneficiaryFiat, Name: " Chris Jones ", BankName: "kuda", AccountNumber: "0346278961",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chris Jones", bank.Name)

	wallet, err := svc.CreateBeneficiary(ctx, "u1", validation.BeneficiaryInput{
		Kind: validation.BeneficiaryCrypto, Name: "Treasury", Chain: "Ethereum", Address: depositAddress,
	})
	require.NoError(t, err)
	assert.Equal(t, validation.ChecksumAddress(depositAddress), wallet.Address)

	_, err = svc.CreateBeneficiary(ctx, "u1", validation.BeneficiaryInput{Kind: "card", Name: "X"})
	_, ok := validation.AsErrors(err)
	assert.True(t, ok)

	all, err := svc.ListBeneficiaries(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	fiat, err := svc.ListBeneficiaries(ctx, "u1", "fiat")
	require.NoError(t, err)
	require.Len(t, fiat, 1)
	assert.Equal(t, bank.ID, fiat[0].ID)

	_, err = svc.ListBeneficiaries(ctx, "u1", "card")
	assert.Error(t, err)

	updated, err := svc.UpdateBeneficiary(ctx, "u1", bank.ID, validation.BeneficiaryInput{
		Kind: validation.BeneficiaryFiat, Name: "Chris J.", BankName: "gtbank", AccountNumber: "0123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "gtbank", updated.BankName)

	_, err = svc.UpdateBeneficiary(ctx, "u2", bank.ID, validation.BeneficiaryInput{
		Kind: validation.BeneficiaryFiat, Name: "Chris J.", BankName: "gtbank", AccountNumber: "0123456789",
	})
	assert.ErrorIs(t, err, ErrBeneficiaryNotFound, "beneficiaries are scoped by user")

	require.NoError(t, svc.DeleteBeneficiary(ctx, "u1", bank.ID))
	assert.ErrorIs(t, svc.DeleteBeneficiary(ctx, "u1", bank.ID), ErrBeneficiaryNotFound)
}

func TestParseTransactionFilter(t *testing.T) {
	f, err := ParseTransactionFilter("crypto", "2024-03-01", "2024-03-02")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionCrypto, f.Kind)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.True(t, f.To.After(time.Date(2024, 3, 2, 23, 59, 59, 0, time.UTC)), "a plain day includes all of it")

	f, err = ParseTransactionFilter("", "", "2024-03-02T10:00:00Z")
	require.NoError(t, err)
	assert.Nil(t, f.From)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), *f.To)

	_, err = ParseTransactionFilter("card", "yesterday", "")
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has("kind"))
	assert.True(t, errs.Has("from"))
}

func TestListTransactions(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newWalletService(t, nil)

	addTransaction(t, repo, domain.Transaction{UserID: "u1", Kind: domain.TransactionCrypto, CreatedAt: testNow.Add(-48 * time.Hour)})
	addTransaction(t, repo, domain.Transaction{UserID: "u1", Kind: domain.TransactionFiat, Currency: "NGN"})
	addTransaction(t, repo, domain.Transaction{UserID: "u2", Kind: domain.TransactionCrypto})

	txs, err := svc.ListTransactions(ctx, "u1", domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.TransactionFiat, txs[0].Kind, "newest first")

	from := testNow.Add(-time.Hour)
	txs, err = svc.ListTransactions(ctx, "u1", domain.TransactionFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestBalance(t *testing.T) {
	ctx := context.Background()
	svc, repo, observer := newWalletService(t, staticRate{rate: decimal.RequireFromString("1500.5")})

	addTransaction(t, repo, domain.Transaction{
		UserID: "u1", Kind: domain.TransactionCrypto, Direction: domain.DirectionIncoming,
		Status: domain.TransactionCompleted, Amount: decimal.RequireFromString("100"),
	})
	addTransaction(t, repo, domain.Transaction{
		UserID: "u1", Kind: domain.TransactionCrypto, Direction: domain.DirectionIncoming,
		Status: domain.TransactionPending, Amount: decimal.RequireFromString("50"),
	})
	addTransaction(t, repo, domain.Transaction{
		UserID: "u1", Kind: domain.TransactionCrypto, Direction: domain.DirectionOutgoing,
		Status: domain.TransactionPending, Amount: decimal.RequireFromString("10"), Fee: decimal.RequireFromString("0.02"),
	})
	addTransaction(t, repo, domain.Transaction{
		UserID: "u1", Kind: domain.TransactionCrypto, Direction: domain.DirectionOutgoing,
		Status: domain.TransactionFailed, Amount: decimal.RequireFromString("30"),
	})

	bal, err := svc.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "USDC", bal.Asset)
	assert.Equal(t, "89.980000", bal.Crypto)
	assert.Equal(t, "10.020000", bal.Pending)
	assert.Equal(t, "1500.50", bal.Rate)
	assert.Equal(t, "135014.99", bal.Fiat)
	assert.Empty(t, bal.RateError)
	assert.Equal(t, 4, bal.Transactions)
	assert.Zero(t, observer.rateFailures)
}

func TestBalanceWithoutRate(t *testing.T) {
	svc, _, observer := newWalletService(t, staticRate{err: errRatesDown})

	bal, err := svc.Balance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "0.000000", bal.Crypto)
	assert.Empty(t, bal.Fiat)
	assert.NotEmpty(t, bal.RateError)
	assert.Equal(t, 1, observer.rateFailures)
}

func TestReceive(t *testing.T) {
	svc, _, _ := newWalletService(t, nil)

	_, err := svc.Receive(validation.ReceiveCryptoInput{Asset: "USDC"})
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, errs.Has("chain"))

	res, err := svc.Receive(validation.ReceiveCryptoInput{Asset: "USDC", Chain: "Ethereum"})
	require.NoError(t, err)
	assert.Equal(t, validation.ChecksumAddress(depositAddress), res.Address)

	png, err := base64.StdEncoding.DecodeString(res.QR)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))
}
