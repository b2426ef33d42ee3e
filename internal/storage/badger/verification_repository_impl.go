package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/AlexZinkM/vendora/internal/domain"
)

type verificationRepositoryImpl struct {
	rm *repoManager
}

func (r verificationRepositoryImpl) Create(_ context.Context, v *domain.DocumentVerification) error {
	return r.rm.update(func(tx *badger.Txn) error {
		var user domain.User
		if err := r.rm.store.TxGet(tx, v.UserID, &user); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if err := r.rm.store.TxInsert(tx, v.ID, v); err != nil {
			return err
		}
		user.DocumentVerificationID = v.ID
		return txUpdateUser(r.rm.store, tx, &user)
	})
}

func (r verificationRepositoryImpl) GetByID(_ context.Context, id string) (*domain.DocumentVerification, error) {
	var v domain.DocumentVerification
	if err := r.rm.store.Get(id, &v); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrVerificationNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r verificationRepositoryImpl) LatestForUser(_ context.Context, userID string) (*domain.DocumentVerification, error) {
	var list []domain.DocumentVerification
	if err := r.rm.store.Find(&list, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrVerificationNotFound
	}
	latest := list[0]
	for _, v := range list[1:] {
		if v.CreatedAt.After(latest.CreatedAt) {
			latest = v
		}
	}
	return &latest, nil
}

func (r verificationRepositoryImpl) Review(_ context.Context, v *domain.DocumentVerification) error {
	return r.rm.update(func(tx *badger.Txn) error {
		if err := r.rm.store.TxUpdate(tx, v.ID, v); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrVerificationNotFound
			}
			return err
		}
		if v.VerificationStatus != domain.VerificationApproved {
			return nil
		}

		var user domain.User
		if err := r.rm.store.TxGet(tx, v.UserID, &user); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		user.IsVerified = true
		user.UpdatedAt = v.UpdatedAt
		return txUpdateUser(r.rm.store, tx, &user)
	})
}
