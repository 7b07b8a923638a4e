package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rental-service/internal/domain"
	"github.com/spec-kit/rental-service/internal/repository"
	apperrors "github.com/spec-kit/rental-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// UserService owns user identity and email uniqueness.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserUpdateInput carries a partial update; empty fields are left unchanged.
type UserUpdateInput struct {
	Name  string
	Email string
}

// Create registers a user. The email must be present, well formed and not
// registered to anyone else.
func (s *UserService) Create(ctx context.Context, name, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("invalid email format", nil)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already in use", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	user := &domain.User{Name: name, Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		// unique index on email backstops the read-then-write race
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial update. Changing the email to one held by a
// different user is a conflict; re-submitting the user's own email is not.
func (s *UserService) Update(ctx context.Context, id int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		if !emailPattern.MatchString(input.Email) {
			return nil, apperrors.NewValidationError("invalid email format", nil)
		}
		if input.Email != user.Email {
			if other, err := s.users.GetByEmail(ctx, input.Email); err == nil && other.ID != id {
				return nil, apperrors.NewConflict("email already in use by another user", map[string]any{"email": input.Email})
			} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			user.Email = input.Email
		}
	}
	if input.Name != "" {
		user.Name = input.Name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
