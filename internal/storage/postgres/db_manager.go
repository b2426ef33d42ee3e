// Package postgresdb is the PostgreSQL storage backend.
package postgresdb

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/domain"
)

const (
	postgresDriver  = "postgres"
	uniqueViolation = "23505"
)

//go:embed migration/*.sql
var migrations embed.FS

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type execTxFunc func(ctx context.Context, txBody func(querier) error) error

type repoManager struct {
	pgxPool *pgxpool.Pool
	log     *zap.Logger

	userRepository         domain.UserRepository
	verificationRepository domain.VerificationRepository
	beneficiaryRepository  domain.BeneficiaryRepository
	transactionRepository  domain.TransactionRepository
}

// NewRepoManager connects to dataSource and brings the schema up to date.
func NewRepoManager(ctx context.Context, dataSource string, logger *zap.Logger) (domain.RepoManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pgxPool, err := pgxpool.Connect(ctx, dataSource)
	if err != nil {
		return nil, err
	}

	if err := migrateDb(dataSource); err != nil {
		pgxPool.Close()
		return nil, err
	}

	rm := &repoManager{
		pgxPool: pgxPool,
		log:     logger.Named("postgres"),
	}
	rm.userRepository = userRepositoryImpl{pgxPool}
	rm.verificationRepository = verificationRepositoryImpl{pgxPool, rm.execTx}
	rm.beneficiaryRepository = beneficiaryRepositoryImpl{pgxPool}
	rm.transactionRepository = transactionRepositoryImpl{pgxPool}

	return rm, nil
}

func (r *repoManager) UserRepository() domain.UserRepository {
	return r.userRepository
}

func (r *repoManager) VerificationRepository() domain.VerificationRepository {
	return r.verificationRepository
}

func (r *repoManager) BeneficiaryRepository() domain.BeneficiaryRepository {
	return r.beneficiaryRepository
}

func (r *repoManager) TransactionRepository() domain.TransactionRepository {
	return r.transactionRepository
}

func (r *repoManager) Close() {
	r.pgxPool.Close()
}

func (r *repoManager) execTx(ctx context.Context, txBody func(querier) error) error {
	conn, err := r.pgxPool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	// Rollback is a no-op once the tx is committed.
	defer func() {
		err := tx.Rollback(ctx)
		switch {
		case errors.Is(err, pgx.ErrTxClosed):
			return
		case err != nil:
			r.log.Error("unable to rollback db tx", zap.Error(err))
		}
	}()

	if err := txBody(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func migrateDb(dataSource string) error {
	src, err := iofs.New(migrations, "migration")
	if err != nil {
		return err
	}

	pg := postgres.Postgres{}
	d, err := pg.Open(dataSource)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", src, postgresDriver, d)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// nullable maps empty strings to NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
