package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dcastano/userhub-api/internal/auth"
	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/models"
	"github.com/dcastano/userhub-api/internal/store"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration and credential login.
type AuthService struct {
	users  store.UserStore
	tokens *auth.TokenService
}

func NewAuthService(users store.UserStore, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register validates the request, persists the user with a hashed password
// and issues a token. The store's unique index is the authoritative guard
// against concurrent duplicate registrations; the FindByEmail pre-check only
// produces an earlier failure for the common case.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthData, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     req.Email,
		Password:  hash,
		Phone:     req.Phone,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthData{User: dto.NewUserResponse(&user), Token: token}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error so responses cannot be used to enumerate
// registered accounts.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthData, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthData{User: dto.NewUserResponse(user), Token: token}, nil
}
