// Package inmemory is a map-backed storage backend used by tests and by the
// memory storage driver.
package inmemory

import (
	"sync"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type store struct {
	locker        sync.RWMutex
	users         map[string]domain.User
	verifications map[string]domain.DocumentVerification
	beneficiaries map[string]domain.Beneficiary
	transactions  map[string]domain.Transaction
}

type repoManager struct {
	userRepository         domain.UserRepository
	verificationRepository domain.VerificationRepository
	beneficiaryRepository  domain.BeneficiaryRepository
	transactionRepository  domain.TransactionRepository
}

// NewRepoManager returns an empty in-memory backend.
func NewRepoManager() domain.RepoManager {
	s := &store{
		users:         make(map[string]domain.User),
		verifications: make(map[string]domain.DocumentVerification),
		beneficiaries: make(map[string]domain.Beneficiary),
		transactions:  make(map[string]domain.Transaction),
	}
	return &repoManager{
		userRepository:         userRepositoryImpl{s},
		verificationRepository: verificationRepositoryImpl{s},
		beneficiaryRepository:  beneficiaryRepositoryImpl{s},
		transactionRepository:  transactionRepositoryImpl{s},
	}
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

func (r *repoManager) Close() {}
