package dbbadger

import (
	"context"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type transactionRepositoryImpl struct {
	rm *repoManager
}

func (r transactionRepositoryImpl) Create(_ context.Context, tx *domain.Transaction) error {
	r.rm.locker.Lock()
	defer r.rm.locker.Unlock()

	var found []domain.Transaction
	if err := r.rm.store.Find(&found, badgerhold.Where("Reference").Eq(tx.Reference).Limit(1)); err != nil {
		return err
	}
	if len(found) > 0 {
		return domain.ErrReferenceExists
	}
	return r.rm.store.Insert(tx.ID, tx)
}

func (r transactionRepositoryImpl) List(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := badgerhold.Where("UserID").Eq(userID)
	if filter.Kind != "" {
		query = query.And("Kind").Eq(filter.Kind)
	}

	var found []domain.Transaction
	if err := r.rm.store.Find(&found, query); err != nil {
		return nil, err
	}

	// date bounds are applied here, badgerhold compares time.Time by encoded value
	result := make([]domain.Transaction, 0, len(found))
	for _, tx := range found {
		if filter.Match(tx) {
			result = append(result, tx)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
