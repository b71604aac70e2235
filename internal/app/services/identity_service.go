package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// IdentityService resolves which user a request acts as
type IdentityService interface {
	// ResolveUser returns the user id for a request whose session holds
	// sessionUserID (0 when unset). A session without a valid user falls back
	// to the first user. The result is 0 when no user exists at all.
	ResolveUser(ctx context.Context, sessionUserID int64) (int64, error)
}

// identityServiceImpl implements the IdentityService interface
type identityServiceImpl struct {
	userRepo repositories.UserRepository
}

// NewIdentityService creates a new identity service instance
func NewIdentityService(userRepo repositories.UserRepository) IdentityService {
	return &identityServiceImpl{userRepo: userRepo}
}

func (s *identityServiceImpl) ResolveUser(ctx context.Context, sessionUserID int64) (int64, error) {
	if sessionUserID > 0 {
		user, err := s.userRepo.GetByID(ctx, sessionUserID)
		if err == nil {
			return user.ID, nil
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return 0, fmt.Errorf("failed to load session user: %w", err)
		}
	}

	user, err := s.userRepo.First(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to select default user: %w", err)
	}
	return user.ID, nil
}
