package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/vendora/internal/auth"
	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/email"
	"github.com/AlexZinkM/vendora/internal/storage/inmemory"
	"github.com/AlexZinkM/vendora/internal/validation"
)

const testPassword = "Secr3t!pass"

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) last() email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return email.Message{}
	}
	return m.sent[len(m.sent)-1]
}

type countingObserver struct {
	registered, loginOK, loginFailed, rateFailures int
	verifications                                  []string
	transfers                                      []string
}

func (o *countingObserver) Registered() { o.registered++ }

func (o *countingObserver) LoggedIn(ok bool) {
	if ok {
		o.loginOK++
	} else {
		o.loginFailed++
	}
}

func (o *countingObserver) Verification(status string) {
	o.verifications = append(o.verifications, status)
}

func (o *countingObserver) Transfer(flow string) { o.transfers = append(o.transfers, flow) }

func (o *countingObserver) RateFailure() { o.rateFailures++ }

type staticRate struct {
	rate decimal.Decimal
	err  error
}

func (r staticRate) GetUSDCtoNGNrate(context.Context) (decimal.Decimal, error) {
	return r.rate, r.err
}

var errRatesDown = errors.New("rates down")

func newTestIssuer(t *testing.T) *auth.Issuer {
	t.Helper()
	issuer, err := auth.NewIssuer("test-secret", auth.DefaultTTL)
	require.NoError(t, err)
	return issuer
}

func registerInput(addr string) validation.CreateAccountInput {
	return validation.CreateAccountInput{
		BusinessName: "Acme Ltd",
		FullName:     "Ada Obi",
		PhoneNumber:  "+2348012345678",
		Email:        addr,
		Password:     testPassword,
	}
}

// seedUser registers a user through the auth service and returns its id.
func seedUser(t *testing.T, repo domain.RepoManager, addr string) string {
	t.Helper()
	svc := NewAuthService(repo, newTestIssuer(t), &recordingMailer{}, "http://localhost:3000", nil)
	_, err := svc.Register(context.Background(), registerInput(addr))
	require.NoError(t, err)

	user, err := repo.UserRepository().GetByEmail(context.Background(), addr)
	require.NoError(t, err)
	return user.ID
}

func newRepo(t *testing.T) domain.RepoManager {
	t.Helper()
	repo := inmemory.NewRepoManager()
	t.Cleanup(repo.Close)
	return repo
}

func dataURL(mime string, payload []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(payload)
}
