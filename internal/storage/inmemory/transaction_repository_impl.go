package inmemory

import (
	"context"
	"sort"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type transactionRepositoryImpl struct {
	store *store
}

func (r transactionRepositoryImpl) Create(_ context.Context, tx *domain.Transaction) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for _, existing := range r.store.transactions {
		if existing.Reference == tx.Reference {
			return domain.ErrReferenceExists
		}
	}
	r.store.transactions[tx.ID] = *tx
	return nil
}

func (r transactionRepositoryImpl) List(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	result := make([]domain.Transaction, 0)
	for _, tx := range r.store.transactions {
		if tx.UserID == userID && filter.Match(tx) {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
