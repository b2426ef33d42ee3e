package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/validation"
	"github.com/AlexZinkM/vendora/internal/wizard"
)

func newTransferService(t *testing.T) (*TransferService, domain.RepoManager, *countingObserver) {
	t.Helper()
	repo := newRepo(t)
	observer := &countingObserver{}
	svc := NewTransferService(repo, decimal.RequireFromString("0.02"), observer)
	svc.now = fixedClock
	return svc, repo, observer
}

var errStoreDown = errors.New("store unavailable")

// flakyTransactions fails the first failures calls to Create with err.
type flakyTransactions struct {
	domain.TransactionRepository
	err      error
	failures int
	calls    int
}

func (f *flakyTransactions) Create(ctx context.Context, tx *domain.Transaction) error {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return f.err
	}
	return f.TransactionRepository.Create(ctx, tx)
}

// toCodeStep opens the crypto wizard of u1 and walks it to the auth step.
func toCodeStep(t *testing.T, svc *TransferService) {
	t.Helper()
	ctx := context.Background()
	svc.Open(ctx, "u1", wizard.KindCrypto)
	_, err := svc.SubmitCryptoDetails(ctx, "u1", cryptoDetails())
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, "u1", wizard.KindCrypto)
	require.NoError(t, err)
}

func cryptoDetails() validation.SendCryptoInput {
	return validation.SendCryptoInput{
		Asset:             "USDC",
		Chain:             "Ethereum",
		Amount:            "10.5",
		DestinationWallet: depositAddress,
		SaveBeneficiary:   true,
	}
}

func fiatDetails() validation.SendFiatInput {
	return validation.SendFiatInput{
		BankName:      "kuda",
		AccountNumber: "0346278961",
		AccountName:   "Chris Jones",
		Amount:        "25000",
	}
}

func TestTransferRequiresOpenWizard(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTransferService(t)

	st := svc.State(ctx, "u1", wizard.KindCrypto)
	assert.False(t, st.Open)
	assert.Equal(t, "details", st.Step)
	assert.Equal(t, "0.020000", st.Fee)

	_, err := svc.SubmitCryptoDetails(ctx, "u1", cryptoDetails())
	assert.ErrorIs(t, err, ErrTransferNotOpen)
	_, err = svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Code: "123456"})
	assert.ErrorIs(t, err, ErrTransferNotOpen)
}

func TestCryptoTransfer(t *testing.T) {
	ctx := context.Background()
	svc, repo, observer := newTransferService(t)

	st := svc.Open(ctx, "u1", wizard.KindCrypto)
	assert.True(t, st.Open)
	assert.Len(t, st.Code.Digits, 6)

	_, err := svc.Confirm(ctx, "u1", wizard.KindCrypto)
	assert.ErrorIs(t, err, ErrTransferStep)

	zero := cryptoDetails()
	zero.Amount = "0.00"
	_, err = svc.SubmitCryptoDetails(ctx, "u1", zero)
	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Amount must be greater than zero", errs["amount"])

	st, err = svc.SubmitCryptoDetails(ctx, "u1", cryptoDetails())
	require.NoError(t, err)
	assert.Equal(t, "summary", st.Step)
	require.NotNil(t, st.Crypto)
	assert.Equal(t, "10.5", st.Crypto.Amount)

	st, err = svc.Confirm(ctx, "u1", wizard.KindCrypto)
	require.NoError(t, err)
	assert.Equal(t, "auth", st.Step)

	// type the code box by box, then submit
	st, err = svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Action: CodePaste, Value: "123", Index: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "", "", ""}, st.Code.Digits)
	assert.Equal(t, 2, st.Code.Focus)

	_, err = svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Action: CodeSubmit})
	_, ok = validation.AsErrors(err)
	assert.True(t, ok, "an incomplete code keeps the step")

	for i, c := range []string{"4", "5", "6"} {
		st, err = svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Action: CodeInput, Value: c, Index: 3 + i})
		require.NoError(t, err)
	}
	st, err = svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Action: CodeSubmit})
	require.NoError(t, err)
	assert.Equal(t, "final", st.Step)
	assert.True(t, st.Terminal)
	require.NotNil(t, st.Transaction)
	assert.Regexp(t, `^Ven-\d{10}$`, st.Transaction.Reference)
	assert.Equal(t, "10.500000", st.Transaction.Amount)
	assert.Equal(t, "pending", st.Transaction.Status)

	txs, err := repo.TransactionRepository().List(ctx, "u1", domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.DirectionOutgoing, txs[0].Direction)
	assert.True(t, txs[0].Fee.Equal(decimal.RequireFromString("0.02")))

	saved, err := repo.BeneficiaryRepository().List(ctx, "u1", domain.BeneficiaryCrypto)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, validation.ChecksumAddress(depositAddress), saved[0].Address)

	assert.Equal(t, []string{"crypto"}, observer.transfers)

	_, err = svc.Confirm(ctx, "u1", wizard.KindCrypto)
	assert.ErrorIs(t, err, ErrTransferStep)

	// closing resets; the same wallet is not saved twice
	st = svc.Close(ctx, "u1", wizard.KindCrypto)
	assert.False(t, st.Open)
	svc.Open(ctx, "u1", wizard.KindCrypto)
	_, err = svc.SubmitCryptoDetails(ctx, "u1", cryptoDetails())
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, "u1", wizard.KindCrypto)
	require.NoError(t, err)
	st, err = svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Code: "654321"})
	require.NoError(t, err)
	assert.True(t, st.Terminal)

	saved, err = repo.BeneficiaryRepository().List(ctx, "u1", domain.BeneficiaryCrypto)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestFiatTransfer(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTransferService(t)

	st := svc.Open(ctx, "u1", wizard.KindFiat)
	assert.Equal(t, "recipient", st.Step)
	assert.Equal(t, "saved", st.RecipientType)

	_, err := svc.SubmitFiatDetails(ctx, "u1", fiatDetails())
	assert.ErrorIs(t, err, ErrTransferStep)

	st, err = svc.ChooseRecipient(ctx, "u1", wizard.KindFiat, validation.RecipientNew)
	require.NoError(t, err)
	assert.Equal(t, "details", st.Step)

	st, err = svc.SubmitFiatDetails(ctx, "u1", fiatDetails())
	require.NoError(t, err)
	assert.Equal(t, "summary", st.Step)
	require.NotNil(t, st.Fiat)
	assert.Equal(t, "NGN", st.Fiat.Currency)

	_, err = svc.Confirm(ctx, "u1", wizard.KindFiat)
	require.NoError(t, err)

	st, err = svc.Code(ctx, "u1", wizard.KindFiat, model.CodeRequest{Action: "shake"})
	assert.ErrorIs(t, err, ErrUnknownCodeAction)

	st, err = svc.Code(ctx, "u1", wizard.KindFiat, model.CodeRequest{Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "status", st.Step)
	require.NotNil(t, st.Transaction)
	assert.Equal(t, "25000.00", st.Transaction.Amount)
	assert.Equal(t, "Chris Jones", st.Transaction.Counterparty)

	saved, err := repo.BeneficiaryRepository().List(ctx, "u1", domain.BeneficiaryFiat)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Chris Jones", saved[0].Name)

	// the crypto wizard of the same user is independent
	assert.False(t, svc.State(ctx, "u1", wizard.KindCrypto).Open)
	assert.True(t, svc.State(ctx, "u1", wizard.KindFiat).Open)
	assert.False(t, svc.State(ctx, "u2", wizard.KindFiat).Open)
}

func TestTransferKeepsCodeStepWhenRecordFails(t *testing.T) {
	ctx := context.Background()
	svc, repo, observer := newTransferService(t)
	flaky := &flakyTransactions{TransactionRepository: repo.TransactionRepository(), err: errStoreDown, failures: 1}
	svc.transactions = flaky

	toCodeStep(t, svc)

	_, err := svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Code: "123456"})
	require.ErrorIs(t, err, errStoreDown)

	st := svc.State(ctx, "u1", wizard.KindCrypto)
	assert.Equal(t, "auth", st.Step)
	assert.False(t, st.Terminal)
	assert.Nil(t, st.Transaction)
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, st.Code.Digits)
	assert.Empty(t, observer.transfers)

	saved, err := repo.BeneficiaryRepository().List(ctx, "u1", domain.BeneficiaryCrypto)
	require.NoError(t, err)
	assert.Empty(t, saved)

	// the store is back, submitting again finishes the transfer
	st, err = svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Action: CodeSubmit})
	require.NoError(t, err)
	assert.Equal(t, "final", st.Step)
	require.NotNil(t, st.Transaction)
	assert.Equal(t, 2, flaky.calls)

	txs, err := repo.TransactionRepository().List(ctx, "u1", domain.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, st.Transaction.Reference, txs[0].Reference)
}

func TestTransferDrawsNewReferenceOnClash(t *testing.T) {
	ctx := context.Background()

	t.Run("retries with a fresh reference", func(t *testing.T) {
		svc, repo, _ := newTransferService(t)
		flaky := &flakyTransactions{TransactionRepository: repo.TransactionRepository(), err: domain.ErrReferenceExists, failures: 1}
		svc.transactions = flaky

		toCodeStep(t, svc)
		st, err := svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Code: "123456"})
		require.NoError(t, err)
		assert.True(t, st.Terminal)
		assert.Equal(t, 2, flaky.calls)
	})

	t.Run("gives up after a few attempts", func(t *testing.T) {
		svc, repo, _ := newTransferService(t)
		flaky := &flakyTransactions{TransactionRepository: repo.TransactionRepository(), err: domain.ErrReferenceExists, failures: 10}
		svc.transactions = flaky

		toCodeStep(t, svc)
		_, err := svc.Code(ctx, "u1", wizard.KindCrypto, model.CodeRequest{Code: "123456"})
		require.ErrorIs(t, err, domain.ErrReferenceExists)
		assert.Equal(t, maxReferenceAttempts, flaky.calls)
		assert.Equal(t, "auth", svc.State(ctx, "u1", wizard.KindCrypto).Step)
	})
}
