package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/dcastano/userhub-api/internal/auth"
	"github.com/dcastano/userhub-api/internal/dto"
	"github.com/dcastano/userhub-api/internal/store"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// UserService implements the authenticated profile and listing operations.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// GetProfile looks up the authenticated user's record. The record can be
// gone even though the token verified, so ErrUserNotFound is a real case.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial update. Only fields present in the request
// change; the password is re-hashed only when a non-empty plaintext was
// supplied, and the email cannot change through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ListUsers returns a page of users ordered newest first. Non-positive page
// or limit falls back to the defaults instead of failing.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*dto.UserListData, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	offset := (page - 1) * limit
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}

	return &dto.UserListData{
		Users: out,
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}
