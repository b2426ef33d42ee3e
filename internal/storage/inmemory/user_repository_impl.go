package inmemory

import (
	"context"
	"strings"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type userRepositoryImpl struct {
	store *store
}

func (r userRepositoryImpl) Create(_ context.Context, user *domain.User) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrUserExists
		}
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r userRepositoryImpl) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepositoryImpl) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r userRepositoryImpl) GetByResetToken(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.find(func(u domain.User) bool { return u.ResetPasswordCode == token })
}

func (r userRepositoryImpl) Update(_ context.Context, user *domain.User) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r userRepositoryImpl) find(match func(domain.User) bool) (*domain.User, error) {
	r.store.locker.RLock()
	defer r.store.locker.RUnlock()

	for _, u := range r.store.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
