package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/thanhpk/randstr"

	"github.com/AlexZinkM/vendora/internal/domain"
	"github.com/AlexZinkM/vendora/internal/storage"
)

// set to run the suite against a disposable postgres database too
const pgTestEnv = "VENDORA_TEST_DATABASE_URL"

type backend struct {
	Name        string
	RepoManager domain.RepoManager
}

func createBackends(t *testing.T) []backend {
	t.Helper()
	ctx := context.Background()

	memory, err := storage.Open(ctx, storage.Options{Driver: storage.DriverMemory})
	require.NoError(t, err)

	badger, err := storage.Open(ctx, storage.Options{Driver: storage.DriverBadger, DataDir: t.TempDir()})
	require.NoError(t, err)

	backends := []backend{
		{Name: "inmemory", RepoManager: memory},
		{Name: "badger", RepoManager: badger},
	}

	if url := os.Getenv(pgTestEnv); url != "" {
		pg, err := storage.Open(ctx, storage.Options{Driver: storage.DriverPostgres, DatabaseURL: url})
		require.NoError(t, err)
		backends = append(backends, backend{Name: "postgres", RepoManager: pg})
	}

	t.Cleanup(func() {
		for _, b := range backends {
			b.RepoManager.Close()
		}
	})
	return backends
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func makeRandomUser() *domain.User {
	ts := now()
	return &domain.User{
		ID:           uuid.New().String(),
		Email:        randstr.Hex(8) + "@vendora.io",
		Name:         "Ada Obi",
		BusinessName: "Acme " + randstr.Hex(4),
		PhoneNumber:  "+2348012345678",
		PasswordHash: randstr.Hex(60),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

func makeRandomTransaction(userID string, kind domain.TransactionKind, at time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Reference: "Ven-" + randstr.String(8, "0123456789"),
		Kind:      kind,
		Direction: domain.DirectionOutgoing,
		Status:    domain.TransactionPending,
		Asset:     "USDC",
		Chain:     "Ethereum",
		Amount:    decimal.RequireFromString("12.5"),
		Fee:       decimal.RequireFromString("0.5"),
		Address:   "0x52908400098527886E0F7030069857D2E4169EE7",
		CreatedAt: at,
	}
}
