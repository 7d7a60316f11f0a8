package usecase

import (
	"context"
	"strings"

	"artifex/internal/domain/entity"
	"artifex/internal/domain/repository"
	"artifex/pkg/errors"
)

const MinPasswordLength = 6

type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

func NewAuthUseCase(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	UserType string
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	user, err := newUser(input, uc.hasher)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.issue(user)
}

// Login answers every credential mismatch with the same error so callers
// cannot probe which emails are registered.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	if !uc.hasher.Compare(user.Password, password) {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	return uc.issue(user)
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, err := uc.tokens.Generate(user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// newUser validates registration input, fills the defaults and hashes the
// password exactly once.
func newUser(input RegisterInput, hasher PasswordHasher) (*entity.User, error) {
	email := entity.NormalizeEmail(input.Email)
	if !isEmail(email) {
		return nil, errors.BadRequest("A valid email is required", nil)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, errors.BadRequest("Password must be at least 6 characters", nil)
	}

	name := sanitize(input.Name)
	username := sanitize(input.Username)
	if username == "" {
		username = name
	}
	if username == "" {
		username = email[:strings.Index(email, "@")]
	}
	if username == "" {
		return nil, errors.BadRequest("Username is required", nil)
	}

	userType := input.UserType
	if userType == "" {
		userType = entity.UserTypeEnthusiast
	}
	if !entity.IsValidUserType(userType) {
		return nil, errors.BadRequest("Invalid user type", nil)
	}

	displayName := name
	if displayName == "" {
		displayName = username
	}

	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	return &entity.User{
		Username:    username,
		Email:       email,
		Password:    hash,
		UserType:    userType,
		DisplayName: displayName,
	}, nil
}
