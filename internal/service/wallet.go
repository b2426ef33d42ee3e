package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/common"
	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/logging"
	"github.com/AlexZinkM/vendora/internal/model"
	"github.com/AlexZinkM/vendora/internal/validation"
)

const (
	balanceAsset    = "USDC"
	balanceCurrency = validation.DefaultCurrency
	qrSize          = 256
	dateLayout      = "2006-01-02"
)

// RateSource quotes the naira price of one USDC.
type RateSource interface {
	GetUSDCtoNGNrate(ctx context.Context) (decimal.Decimal, error)
}

type WalletService struct {
	beneficiaries  domain.BeneficiaryRepository
	transactions   domain.TransactionRepository
	rates          RateSource
	depositAddress string
	observer       Observer
	now            clock
}

func NewWalletService(
	repo domain.RepoManager, rates RateSource, depositAddress string, observer Observer,
) *WalletService {
	return &WalletService{
		beneficiaries:  repo.BeneficiaryRepository(),
		transactions:   repo.TransactionRepository(),
		rates:          rates,
		depositAddress: depositAddress,
		observer:       observerOrNop(observer),
		now:            utcNow,
	}
}

func (s *WalletService) ListBeneficiaries(ctx context.Context, userID, kind string) ([]domain.Beneficiary, error) {
	k := domain.BeneficiaryKind(kind)
	if k != "" && k != domain.BeneficiaryFiat && k != domain.BeneficiaryCrypto {
		return nil, validation.Errors{"kind": "Kind must be fiat or crypto"}
	}
	return s.beneficiaries.List(ctx, userID, k)
}

func (s *WalletService) CreateBeneficiary(
	ctx context.Context, userID string, in validation.BeneficiaryInput,
) (*domain.Beneficiary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	b := &domain.Beneficiary{
		ID:        newID(),
		UserID:    userID,
		CreatedAt: now,
	}
	applyBeneficiary(b, in, now)
	if err := s.beneficiaries.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *WalletService) UpdateBeneficiary(
	ctx context.Context, userID, id string, in validation.BeneficiaryInput,
) (*domain.Beneficiary, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	b, err := s.beneficiaries.Get(ctx, userID, id)
	if err != nil {
		return nil, mapBeneficiaryErr(err)
	}
	applyBeneficiary(b, in, s.now())
	if err := s.beneficiaries.Update(ctx, b); err != nil {
		return nil, mapBeneficiaryErr(err)
	}
	return b, nil
}

func (s *WalletService) DeleteBeneficiary(ctx context.Context, userID, id string) error {
	return mapBeneficiaryErr(s.beneficiaries.Delete(ctx, userID, id))
}

// applyBeneficiary copies the fields of in that belong to its kind.
func applyBeneficiary(b *domain.Beneficiary, in validation.BeneficiaryInput, now time.Time) {
	b.Kind = domain.BeneficiaryKind(in.Kind)
	b.Name = strings.TrimSpace(in.Name)
	b.BankName, b.AccountNumber, b.Chain, b.Address = "", "", "", ""
	if b.Kind == domain.BeneficiaryFiat {
		b.BankName = in.BankName
		b.AccountNumber = in.AccountNumber
	} else {
		b.Chain = in.Chain
		b.Address = validation.ChecksumAddress(in.Address)
	}
	b.UpdatedAt = now
}

func mapBeneficiaryErr(err error) error {
	if errors.Is(err, domain.ErrBeneficiaryNotFound) {
		return ErrBeneficiaryNotFound
	}
	return err
}

// ParseTransactionFilter reads the kind, from and to query values. Dates are
// RFC 3339 timestamps or plain days; a plain "to" day includes the whole day.
func ParseTransactionFilter(kind, from, to string) (domain.TransactionFilter, error) {
	var (
		filter domain.TransactionFilter
		errs   = validation.Errors{}
	)

	switch k := domain.TransactionKind(kind); k {
	case "", domain.TransactionCrypto, domain.TransactionFiat:
		filter.Kind = k
	default:
		errs["kind"] = "Kind must be crypto or fiat"
	}

	if from != "" {
		t, _, err := parseDate(from)
		if err != nil {
			errs["from"] = "Invalid date"
		} else {
			filter.From = &t
		}
	}
	if to != "" {
		t, dayOnly, err := parseDate(to)
		if err != nil {
			errs["to"] = "Invalid date"
		} else {
			if dayOnly {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			filter.To = &t
		}
	}

	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(dateLayout, s)
	return t, true, err
}

func (s *WalletService) ListTransactions(
	ctx context.Context, userID string, filter domain.TransactionFilter,
) ([]domain.Transaction, error) {
	return s.transactions.List(ctx, userID, filter)
}

// Balance sums the crypto transactions of the user. Completed incoming funds
// count, outgoing transfers and their fees are held as soon as they are
// recorded. The naira value is omitted when no rate is available.
func (s *WalletService) Balance(ctx context.Context, userID string) (*model.BalanceResponse, error) {
	txs, err := s.transactions.List(ctx, userID, domain.TransactionFilter{Kind: domain.TransactionCrypto})
	if err != nil {
		return nil, err
	}

	available, pending := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if !strings.EqualFold(tx.Asset, balanceAsset) || tx.Status == domain.TransactionFailed {
			continue
		}
		switch tx.Direction {
		case domain.DirectionIncoming:
			if tx.Status == domain.TransactionCompleted {
				available = available.Add(tx.Amount)
			}
		case domain.DirectionOutgoing:
			cost := tx.Amount.Add(tx.Fee)
			available = available.Sub(cost)
			if tx.Status == domain.TransactionPending {
				pending = pending.Add(cost)
			}
		}
	}

	resp := &model.BalanceResponse{
		Asset:        balanceAsset,
		Crypto:       common.FormatAmount(available, balanceAsset),
		Pending:      common.FormatAmount(pending, balanceAsset),
		Currency:     balanceCurrency,
		Transactions: len(txs),
	}

	if s.rates == nil {
		resp.RateError = "exchange rate unavailable"
		return resp, nil
	}
	rate, err := s.rates.GetUSDCtoNGNrate(ctx)
	if err != nil {
		s.observer.RateFailure()
		logging.Warn("balance without fiat value", zap.Error(err))
		resp.RateError = "exchange rate unavailable"
		return resp, nil
	}
	resp.Rate = common.FormatAmount(rate, balanceCurrency)
	resp.Fiat = common.FormatAmount(common.ToFiat(available, rate), balanceCurrency)
	return resp, nil
}

// Receive returns the deposit address for the asset and chain together with
// a QR code of "asset:chain:address" as a base64 PNG.
func (s *WalletService) Receive(in validation.ReceiveCryptoInput) (*model.ReceiveResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	address := validation.ChecksumAddress(s.depositAddress)
	png, err := qrcode.Encode(fmt.Sprintf("%s:%s:%s", in.Asset, in.Chain, address), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	return &model.ReceiveResponse{
		Asset:   in.Asset,
		Chain:   in.Chain,
		Address: address,
		QR:      base64.StdEncoding.EncodeToString(png),
	}, nil
}
