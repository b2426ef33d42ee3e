package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type beneficiaryRepositoryImpl struct {
	rm *repoManager
}

func (r beneficiaryRepositoryImpl) Create(_ context.Context, b *domain.Beneficiary) error {
	return r.rm.store.Insert(b.ID, b)
}

func (r beneficiaryRepositoryImpl) Get(_ context.Context, userID, id string) (*domain.Beneficiary, error) {
	var b domain.Beneficiary
	if err := r.rm.store.Get(id, &b); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrBeneficiaryNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, domain.ErrBeneficiaryNotFound
	}
	return &b, nil
}

func (r beneficiaryRepositoryImpl) List(_ context.Context, userID string, kind domain.BeneficiaryKind) ([]domain.Beneficiary, error) {
	query := badgerhold.Where("UserID").Eq(userID)
	if kind != "" {
		query = query.And("Kind").Eq(kind)
	}

	result := make([]domain.Beneficiary, 0)
	if err := r.rm.store.Find(&result, query); err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r beneficiaryRepositoryImpl) Update(ctx context.Context, b *domain.Beneficiary) error {
	if _, err := r.Get(ctx, b.UserID, b.ID); err != nil {
		return err
	}
	return r.rm.store.Update(b.ID, b)
}

func (r beneficiaryRepositoryImpl) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	return r.rm.store.Delete(id, domain.Beneficiary{})
}
