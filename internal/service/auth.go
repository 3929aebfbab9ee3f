package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/housingportal/housingportal-go/internal/crypto"
	"github.com/housingportal/housingportal-go/internal/model"
	"github.com/housingportal/housingportal-go/internal/repository"
)

// AuthService handles login and registration.
type AuthService struct {
	users  UserStore
	hasher crypto.PasswordHasher
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher crypto.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login verifies the credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResult, error) {
	if err := validateRequest(req); err != nil {
		return model.AuthResult{}, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResult{}, ErrUserNotFound
		}
		return model.AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return model.AuthResult{}, ErrIncorrectPassword
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)

	return model.AuthResult{Success: true, Message: "Login successful", Token: token}, nil
}

// Register creates the credential and student profile for a new account and
// returns a session token for it.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResult, error) {
	if err := validateRequest(req); err != nil {
		return model.AuthResult{}, err
	}

	if taken, err := s.exists(ctx, s.users.GetByUsername, req.Username); err != nil {
		return model.AuthResult{}, err
	} else if taken {
		return model.AuthResult{}, ErrUsernameTaken
	}

	if taken, err := s.exists(ctx, s.users.GetByEmail, req.Email); err != nil {
		return model.AuthResult{}, err
	} else if taken {
		return model.AuthResult{}, ErrEmailTaken
	}

	if err := crypto.CheckPasswordStrength(req.Password); err != nil {
		return model.AuthResult{}, ErrWeakPassword
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Roles:        []string{model.RoleStudent},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}
	student := &model.Student{
		ID:             user.ID,
		Name:           name,
		Email:          req.Email,
		Phone:          req.Phone,
		Major:          req.Major,
		GraduationYear: req.GraduationYear,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.CreateWithStudent(ctx, user, student); err != nil {
		slog.ErrorContext(ctx, "registration failed", "username", req.Username, "error", err)
		return model.AuthResult{}, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)

	return model.AuthResult{Success: true, Message: "Registration successful", Token: token}, nil
}

func (s *AuthService) exists(ctx context.Context, lookup func(context.Context, string) (*model.User, error), key string) (bool, error) {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrUserNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup user: %w", err)
	}
}
