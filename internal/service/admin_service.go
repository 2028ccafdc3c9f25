package service

import (
	"context"
	"errors"
	"fmt"

	"password_vault/internal/models"
	"password_vault/internal/repository"
)

type AdminService struct {
	store repository.Store
}

func NewAdminService(store repository.Store) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes userID and all of its entries in one transaction and
// returns the number of entries removed. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, userID int64) (int64, error) {
	if actorID == userID {
		return 0, fmt.Errorf("%w: cannot delete your own account", ErrInvalidOperation)
	}

	var removed int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, st repository.Store) error {
		if _, err := st.Users().GetByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, userID)
			}
			return fmt.Errorf("load user: %w", err)
		}
		n, err := st.Entries().DeleteByOwner(ctx, userID)
		if err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		if err := st.Users().Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
