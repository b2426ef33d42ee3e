package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/common"
	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/otp"
	"github.com/AlexZinkM/vendora/internal/validation"
	"github.com/AlexZinkM/vendora/internal/wizard"
)

// Code input actions accepted by TransferService.Code.
const (
	CodeInput     = "input"
	CodePaste     = "paste"
	CodeBackspace = "backspace"
	CodeLeft      = "left"
	CodeRight     = "right"
	CodeSubmit    = "submit"
)

// feeAsset is the unit transfer fees are charged in, for both flows.
const feeAsset = "USDC"

const maxReferenceAttempts = 3

type sessionKey struct {
	userID string
	kind   wizard.Kind
}

// transferSession is one open wizard with its code input. The transaction is
// set once the wizard reached its terminal step.
type transferSession struct {
	mu     sync.Mutex
	flow   wizard.Flow
	crypto *wizard.CryptoSend
	fiat   *wizard.FiatSend
	code   *otp.Input
	tx     *domain.Transaction
}

func newTransferSession(kind wizard.Kind) *transferSession {
	s := &transferSession{}
	switch kind {
	case wizard.KindFiat:
		s.fiat = wizard.NewFiatSend()
		s.flow = s.fiat
		s.code = otp.New(s.fiat.CodeLength())
	default:
		s.crypto = wizard.NewCryptoSend()
		s.flow = s.crypto
		s.code = otp.New(s.crypto.CodeLength())
	}
	return s
}

// TransferService hosts the send wizards, one per user and flow.
type TransferService struct {
	beneficiaries domain.BeneficiaryRepository
	transactions  domain.TransactionRepository
	fee           decimal.Decimal
	observer      Observer
	now           clock

	mu       sync.Mutex
	sessions map[sessionKey]*transferSession
}

func NewTransferService(repo domain.RepoManager, fee decimal.Decimal, observer Observer) *TransferService {
	return &TransferService{
		beneficiaries: repo.BeneficiaryRepository(),
		transactions:  repo.TransactionRepository(),
		fee:           fee,
		observer:      observerOrNop(observer),
		now:           utcNow,
		sessions:      make(map[sessionKey]*transferSession),
	}
}

func (s *TransferService) session(userID string, kind wizard.Kind, create bool) *transferSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{userID: userID, kind: kind}
	sess, ok := s.sessions[key]
	if !ok && create {
		sess = newTransferSession(kind)
		s.sessions[key] = sess
	}
	return sess
}

// Open opens the wizard of the flow. An already open wizard is left as is.
func (s *TransferService) Open(_ context.Context, userID string, kind wizard.Kind) *model.TransferState {
	sess := s.session(userID, kind, true)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.flow.IsOpen() {
		sess.flow.SetOpen(true)
		sess.code.Reset()
		sess.tx = nil
	}
	return s.state(kind, sess)
}

// Close closes the wizard and forgets everything it collected.
func (s *TransferService) Close(_ context.Context, userID string, kind wizard.Kind) *model.TransferState {
	s.mu.Lock()
	key := sessionKey{userID: userID, kind: kind}
	sess, ok := s.sessions[key]
	delete(s.sessions, key)
	s.mu.Unlock()

	if !ok {
		return s.state(kind, newTransferSession(kind))
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.flow.SetOpen(false)
	sess.code.Reset()
	sess.tx = nil
	return s.state(kind, sess)
}

func (s *TransferService) State(_ context.Context, userID string, kind wizard.Kind) *model.TransferState {
	sess := s.session(userID, kind, false)
	if sess == nil {
		return s.state(kind, newTransferSession(kind))
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.state(kind, sess)
}

func (s *TransferService) ChooseRecipient(
	ctx context.Context, userID string, kind wizard.Kind, recipient validation.RecipientType,
) (*model.TransferState, error) {
	return s.advance(ctx, userID, kind, wizard.RecipientChosen{Type: recipient})
}

func (s *TransferService) SubmitCryptoDetails(
	ctx context.Context, userID string, in validation.SendCryptoInput,
) (*model.TransferState, error) {
	if err := positiveAmount(in.Validate(), in.Amount); err != nil {
		return nil, err
	}
	return s.advance(ctx, userID, wizard.KindCrypto, wizard.CryptoDetailsSubmitted{Input: in})
}

func (s *TransferService) SubmitFiatDetails(
	ctx context.Context, userID string, in validation.SendFiatInput,
) (*model.TransferState, error) {
	probe := in
	probe.RecipientType = validation.RecipientNew
	if probe.Currency == "" {
		probe.Currency = validation.DefaultCurrency
	}
	if err := positiveAmount(probe.Validate(), in.Amount); err != nil {
		return nil, err
	}
	return s.advance(ctx, userID, wizard.KindFiat, wizard.FiatDetailsSubmitted{Input: in})
}

// positiveAmount rejects zero amounts that pass the form pattern. Form
// failures are left to the wizard so they are reported together.
func positiveAmount(formErr error, raw string) error {
	if formErr != nil {
		return nil
	}
	if _, err := common.ParseAmount(raw); err != nil {
		return validation.Errors{"amount": "Amount must be greater than zero"}
	}
	return nil
}

func (s *TransferService) Confirm(ctx context.Context, userID string, kind wizard.Kind) (*model.TransferState, error) {
	return s.advance(ctx, userID, kind, wizard.SummaryConfirmed{})
}

// Code edits the segmented code input of the flow. The submit action sends
// the assembled code to the wizard. A request without an action but with a
// code pastes it from the first box and submits.
func (s *TransferService) Code(
	ctx context.Context, userID string, kind wizard.Kind, req model.CodeRequest,
) (*model.TransferState, error) {
	sess := s.session(userID, kind, false)
	if sess == nil {
		return nil, ErrTransferNotOpen
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.flow.IsOpen() {
		return nil, ErrTransferNotOpen
	}

	switch req.Action {
	case CodeInput:
		sess.code.SetCharacter(req.Value, req.Index)
	case CodePaste:
		sess.code.HandlePaste(req.Value, req.Index)
	case CodeBackspace:
		sess.code.HandleBackspace(req.Index)
	case CodeLeft:
		sess.code.HandleArrow(otp.Left, req.Index)
	case CodeRight:
		sess.code.HandleArrow(otp.Right, req.Index)
	case CodeSubmit:
		return s.advanceLocked(ctx, userID, kind, sess, wizard.CodeSubmitted{Code: sess.code.Code()})
	case "":
		if req.Code == "" {
			return nil, ErrUnknownCodeAction
		}
		sess.code.Reset()
		sess.code.HandlePaste(req.Code, 0)
		return s.advanceLocked(ctx, userID, kind, sess, wizard.CodeSubmitted{Code: sess.code.Code()})
	default:
		return nil, ErrUnknownCodeAction
	}
	return s.state(kind, sess), nil
}

func (s *TransferService) advance(
	ctx context.Context, userID string, kind wizard.Kind, ev wizard.Event,
) (*model.TransferState, error) {
	sess := s.session(userID, kind, false)
	if sess == nil {
		return nil, ErrTransferNotOpen
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.advanceLocked(ctx, userID, kind, sess, ev)
}

func (s *TransferService) advanceLocked(
	ctx context.Context, userID string, kind wizard.Kind, sess *transferSession, ev wizard.Event,
) (*model.TransferState, error) {
	finishes, err := sess.flow.Check(ev)
	if err != nil {
		return nil, flowError(err)
	}

	// stored before the step moves; a failed write keeps the code step
	if finishes && sess.tx == nil {
		tx, err := s.record(ctx, userID, sess)
		if err != nil {
			return nil, err
		}
		sess.tx = tx
	}

	if err := sess.flow.Advance(ev); err != nil {
		return nil, flowError(err)
	}
	return s.state(kind, sess), nil
}

func flowError(err error) error {
	switch {
	case errors.Is(err, wizard.ErrClosed):
		return ErrTransferNotOpen
	case errors.Is(err, wizard.ErrUnexpectedEvent):
		return ErrTransferStep
	}
	return err
}

// record stores the pending transaction of a finished wizard and saves the
// recipient when asked to.
func (s *TransferService) record(ctx context.Context, userID string, sess *transferSession) (*domain.Transaction, error) {
	now := s.now()
	tx := &domain.Transaction{
		ID:        newID(),
		UserID:    userID,
		Direction: domain.DirectionOutgoing,
		Status:    domain.TransactionPending,
		Asset:     feeAsset,
		Fee:       s.fee,
		CreatedAt: now,
	}

	var save *domain.Beneficiary
	switch {
	case sess.crypto != nil:
		data, _ := sess.crypto.Data()
		amount, err := common.ParseAmount(data.Amount)
		if err != nil {
			return nil, validation.Errors{"amount": "Please enter a valid number"}
		}
		address := validation.ChecksumAddress(data.DestinationWallet)
		tx.Kind = domain.TransactionCrypto
		tx.Asset = data.Asset
		tx.Chain = data.Chain
		tx.Amount = amount
		tx.Counterparty = address
		tx.Address = address
		if data.SaveBeneficiary {
			save = &domain.Beneficiary{
				Kind:    domain.BeneficiaryCrypto,
				Name:    address,
				Chain:   data.Chain,
				Address: address,
			}
		}

	case sess.fiat != nil:
		data, _ := sess.fiat.Data()
		amount, err := common.ParseAmount(data.Amount)
		if err != nil {
			return nil, validation.Errors{"amount": "Please enter a valid number"}
		}
		tx.Kind = domain.TransactionFiat
		tx.Currency = data.Currency
		tx.Amount = amount
		tx.Counterparty = data.AccountName
		tx.BankName = data.BankName
		tx.AccountNumber = data.AccountNumber
		if data.RecipientType == validation.RecipientNew {
			save = &domain.Beneficiary{
				Kind:          domain.BeneficiaryFiat,
				Name:          data.AccountName,
				BankName:      data.BankName,
				AccountNumber: data.AccountNumber,
			}
		}
	}

	if err := s.createWithReference(ctx, tx); err != nil {
		return nil, err
	}
	s.observer.Transfer(string(tx.Kind))
	logging.Info("transfer recorded",
		zap.String("user_id", userID),
		zap.String("reference", tx.Reference),
		zap.String("kind", string(tx.Kind)),
	)

	if save != nil {
		if err := s.saveBeneficiary(ctx, userID, save, now); err != nil {
			logging.Warn("failed to save beneficiary", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return tx, nil
}

// createWithReference stores tx under a fresh reference, drawing a new one
// when the store already holds it.
func (s *TransferService) createWithReference(ctx context.Context, tx *domain.Transaction) error {
	for attempt := 1; ; attempt++ {
		tx.Reference = newReference()
		err := s.transactions.Create(ctx, tx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrReferenceExists) || attempt == maxReferenceAttempts {
			return err
		}
		logging.Warn("transfer reference taken, retrying", zap.String("reference", tx.Reference))
	}
}

// saveBeneficiary stores b unless the user already saved the same account.
func (s *TransferService) saveBeneficiary(ctx context.Context, userID string, b *domain.Beneficiary, now time.Time) error {
	existing, err := s.beneficiaries.List(ctx, userID, b.Kind)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if b.Kind == domain.BeneficiaryCrypto && strings.EqualFold(e.Address, b.Address) {
			return nil
		}
		if b.Kind == domain.BeneficiaryFiat && e.BankName == b.BankName && e.AccountNumber == b.AccountNumber {
			return nil
		}
	}
	b.ID = newID()
	b.UserID = userID
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.beneficiaries.Create(ctx, b)
}

func (s *TransferService) state(kind wizard.Kind, sess *transferSession) *model.TransferState {
	st := &model.TransferState{
		Flow:     string(kind),
		Open:     sess.flow.IsOpen(),
		Step:     sess.flow.StepName(),
		Terminal: sess.flow.Terminal(),
		Fee:      common.FormatAmount(s.fee, feeAsset),
		FeeAsset: feeAsset,
		Code: model.CodeState{
			Length: sess.code.Len(),
			Digits: sess.code.Digits(),
			Focus:  sess.code.Focus(),
		},
	}
	if sess.crypto != nil {
		if data, ok := sess.crypto.Data(); ok {
			st.Crypto = &data
		}
	}
	if sess.fiat != nil {
		st.RecipientType = string(sess.fiat.RecipientType())
		if data, ok := sess.fiat.Data(); ok {
			st.Fiat = &data
		}
	}
	if sess.tx != nil {
		tx := model.NewTransaction(*sess.tx)
		st.Transaction = &tx
	}
	return st
}
