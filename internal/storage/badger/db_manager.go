// Package dbbadger is the embedded storage backend, built on badgerhold.
package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
	"go.uber.org/zap"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type repoManager struct {
	store *badgerhold.Store
	// serialises uniqueness checks that badgerhold cannot express
	locker sync.Mutex

	userRepository         domain.UserRepository
	verificationRepository domain.VerificationRepository
	beneficiaryRepository  domain.BeneficiaryRepository
	transactionRepository  domain.TransactionRepository
}

// NewRepoManager opens (or creates if not exists) the badger store in dbDir.
// logger may be nil to silence badger.
func NewRepoManager(dbDir string, logger *zap.Logger) (domain.RepoManager, error) {
	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening badger db: %w", err)
	}

	rm := &repoManager{store: store}
	rm.userRepository = userRepositoryImpl{rm}
	rm.verificationRepository = verificationRepositoryImpl{rm}
	rm.beneficiaryRepository = beneficiaryRepositoryImpl{rm}
	rm.transactionRepository = transactionRepositoryImpl{rm}
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
	r.store.Close()
}

// update runs fn in a read-write badger transaction and commits it.
func (r *repoManager) update(fn func(tx *badger.Txn) error) error {
	return r.store.Badger().Update(fn)
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}

func createDb(dbDir string, logger *zap.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	if logger != nil {
		opts.Logger = badgerLogger{logger.Named("badger").Sugar()}
	} else {
		opts.Logger = nil
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

// badgerLogger adapts zap to badger.Logger, which spells Warningf.
type badgerLogger struct {
	*zap.SugaredLogger
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Warnf(format, args...)
}
