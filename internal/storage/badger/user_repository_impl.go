package dbbadger

import (
	"context"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type userRepositoryImpl struct {
	rm *repoManager
}

func (r userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	r.rm.locker.Lock()
	defer r.rm.locker.Unlock()

	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if err := r.rm.store.Insert(user.ID, user); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrUserExists
		}
		return err
	}
	return nil
}

func (r userRepositoryImpl) GetByID(_ context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.rm.store.Get(id, &user); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r userRepositoryImpl) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	var users []domain.User
	query := badgerhold.Where("Email").MatchFunc(func(ra *badgerhold.RecordAccess) (bool, error) {
		field, ok := ra.Field().(string)
		return ok && strings.EqualFold(field, email), nil
	})
	if err := r.rm.store.Find(&users, query); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &users[0], nil
}

func (r userRepositoryImpl) GetByResetToken(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	var users []domain.User
	if err := r.rm.store.Find(&users, badgerhold.Where("ResetPasswordCode").Eq(token)); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return &users[0], nil
}

func (r userRepositoryImpl) Update(_ context.Context, user *domain.User) error {
	return r.rm.update(func(tx *badger.Txn) error {
		return txUpdateUser(r.rm.store, tx, user)
	})
}

func txUpdateUser(store *badgerhold.Store, tx *badger.Txn, user *domain.User) error {
	if err := store.TxUpdate(tx, user.ID, user); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
