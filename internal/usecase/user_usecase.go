package usecase

import (
	"context"
	"strings"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewUserUseCase(userRepo repository.UserRepository, hasher PasswordHasher) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// UpdateUserInput carries a profile patch. Passwords are changed through
// ChangePassword only.
type UpdateUserInput struct {
	Username       *string
	Email          *string
	UserType       *string
	DisplayName    *string
	Bio            *string
	ProfilePicture *string
	Location       *string
	Website        *string
	SocialLinks    *entity.SocialLinks
}

func (uc *UserUseCase) List(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *UserUseCase) ListArtists(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.ListByType(ctx, entity.UserTypeArtist)
}

func (uc *UserUseCase) Get(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) Create(ctx context.Context, input RegisterInput) (*entity.User, error) {
	user, err := newUser(input, uc.hasher)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) Update(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := sanitize(*input.Username)
		if username == "" {
			return nil, errors.BadRequest("Username cannot be empty", nil)
		}
		user.Username = username
	}
	if input.Email != nil {
		email := entity.NormalizeEmail(*input.Email)
		if !isEmail(email) {
			return nil, errors.BadRequest("A valid email is required", nil)
		}
		user.Email = email
	}
	if input.UserType != nil {
		if !entity.IsValidUserType(*input.UserType) {
			return nil, errors.BadRequest("Invalid user type", nil)
		}
		user.UserType = *input.UserType
	}
	if input.DisplayName != nil {
		user.DisplayName = sanitize(*input.DisplayName)
	}
	if input.Bio != nil {
		user.Bio = sanitize(*input.Bio)
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = strings.TrimSpace(*input.ProfilePicture)
	}
	if input.Location != nil {
		user.Location = sanitize(*input.Location)
	}
	if input.Website != nil {
		user.Website = strings.TrimSpace(*input.Website)
	}
	if input.SocialLinks != nil {
		user.SocialLinks = *input.SocialLinks
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rehashes only after the current password checks out.
func (uc *UserUseCase) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !uc.hasher.Compare(user.Password, currentPassword) {
		return errors.Unauthorized("Current password is incorrect", nil)
	}
	if len(newPassword) < MinPasswordLength {
		return errors.BadRequest("Password must be at least 6 characters", nil)
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}
	user.Password = hash
	return uc.userRepo.Update(ctx, user)
}

func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.userRepo.Delete(ctx, id)
}
