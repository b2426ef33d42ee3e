package inmemory

import (
	"context"
	"sort"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type beneficiaryRepositoryImpl struct {
	store *store
}

func (r beneficiaryRepositoryImpl) Create(_ context.Context, b *domain.Beneficiary) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	r.store.beneficiaries[b.ID] = *b
	return nil
}

func (r beneficiaryRepositoryImpl) Get(_ context.Context, userID, id string) (*domain.Beneficiary, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	b, ok := r.store.beneficiaries[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBeneficiaryNotFound
	}
	return &b, nil
}

func (r beneficiaryRepositoryImpl) List(_ context.Context, userID string, kind domain.BeneficiaryKind) ([]domain.Beneficiary, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	result := make([]domain.Beneficiary, 0)
	for _, b := range r.store.beneficiaries {
		if b.UserID != userID || (kind != "" && b.Kind != kind) {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r beneficiaryRepositoryImpl) Update(_ context.Context, b *domain.Beneficiary) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	prev, ok := r.store.beneficiaries[b.ID]
	if !ok || prev.UserID != b.UserID {
		return domain.ErrBeneficiaryNotFound
	}
	r.store.beneficiaries[b.ID] = *b
	return nil
}

func (r beneficiaryRepositoryImpl) Delete(_ context.Context, userID, id string) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	b, ok := r.store.beneficiaries[id]
	if !ok || b.UserID != userID {
		return domain.ErrBeneficiaryNotFound
	}
	delete(r.store.beneficiaries, id)
	return nil
}
