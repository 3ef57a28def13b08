package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
	"github.com/catebros/lostfound/internal/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("unknown role")
)

type UserService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
}

func NewUserService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository) *UserService {
	return &UserService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

type UpdateUserInput struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password,omitempty"`
	Role     domain.Role `json:"role"`
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update edits a user record. A username or email may collide with the
// user's own current value (no-op rename) but not with a different
// user. A role change from USER to a staff role triggers the promotion
// cascade: the user's items and messages are deleted in the same
// transaction as the record update.
func (s *UserService) Update(ctx context.Context, actorID, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if input.Username != existing.Username {
		other, err := s.userRepo.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != userID {
			return nil, ErrUsernameTaken
		}
	}
	if input.Email != existing.Email {
		other, err := s.userRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != userID {
			return nil, ErrEmailTaken
		}
	}

	updated := *existing
	updated.Username = input.Username
	updated.Email = input.Email
	updated.Role = input.Role
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		updated.PasswordHash = hash
	}

	// The cascade fires only on a USER -> staff promotion. Changes
	// between staff roles, or any edit that leaves the role alone, are
	// plain updates.
	promoted := existing.Role == domain.RoleUser && updated.Role.IsStaff()
	if promoted {
		if err := s.userRepo.PromoteWithCascade(ctx, &updated); err != nil {
			return nil, fmt.Errorf("promoting user: %w", err)
		}
	} else {
		if err := s.userRepo.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("updating user: %w", err)
		}
	}

	details := "user " + updated.Username + " updated"
	if promoted {
		details = "user " + updated.Username + " promoted to " + string(updated.Role)
	}
	recordActivity(ctx, s.activityRepo, actorID, domain.ActionUpdateUser, details)

	return &updated, nil
}

// Delete removes a user and everything they own: messages, items, and
// activity logs go in the same transaction as the user row. The
// no-self-deletion rule for admins is enforced by the caller.
func (s *UserService) Delete(ctx context.Context, actorID, userID uuid.UUID) error {
	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	recordActivity(ctx, s.activityRepo, actorID, domain.ActionDeleteUser, "user "+existing.Username+" deleted")
	return nil
}
