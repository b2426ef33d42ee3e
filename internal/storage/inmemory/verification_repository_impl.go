package inmemory

import (
	"context"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type verificationRepositoryImpl struct {
	store *store
}

func (r verificationRepositoryImpl) Create(_ context.Context, v *domain.DocumentVerification) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	user, ok := r.store.users[v.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.store.verifications[v.ID] = *v
	user.DocumentVerificationID = v.ID
	r.store.users[user.ID] = user
	return nil
}

func (r verificationRepositoryImpl) GetByID(_ context.Context, id string) (*domain.DocumentVerification, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	v, ok := r.store.verifications[id]
	if !ok {
		return nil, domain.ErrVerificationNotFound
	}
	return &v, nil
}

func (r verificationRepositoryImpl) LatestForUser(_ context.Context, userID string) (*domain.DocumentVerification, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	var latest *domain.DocumentVerification
	for _, v := range r.store.verifications {
		if v.UserID != userID {
			continue
		}
		if latest == nil || v.CreatedAt.After(latest.CreatedAt) {
			v := v
			latest = &v
		}
	}
	if latest == nil {
		return nil, domain.ErrVerificationNotFound
	}
	return latest, nil
}

func (r verificationRepositoryImpl) Review(_ context.Context, v *domain.DocumentVerification) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.verifications[v.ID]; !ok {
		return domain.ErrVerificationNotFound
	}
	r.store.verifications[v.ID] = *v

	if v.VerificationStatus == domain.VerificationApproved {
		user, ok := r.store.users[v.UserID]
		if !ok {
			return domain.ErrUserNotFound
		}
		user.IsVerified = true
		user.UpdatedAt = v.UpdatedAt
		r.store.users[user.ID] = user
	}
	return nil
}
