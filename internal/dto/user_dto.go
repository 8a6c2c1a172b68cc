package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/userhub-api/internal/models"
	"github.com/dcastano/userhub-api/internal/validation"
)

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

// Validate checks the registration constraints and normalizes the email
// in place.
func (r *RegisterRequest) Validate() validation.Errors {
	var errs validation.Errors
	validation.CheckName(&errs, "firstName", r.FirstName)
	validation.CheckName(&errs, "lastName", r.LastName)
	r.Email = validation.NormalizeEmail(r.Email)
	validation.CheckEmail(&errs, r.Email)
	validation.CheckPassword(&errs, r.Password)
	if r.Phone != "" {
		validation.CheckPhone(&errs, r.Phone)
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() validation.Errors {
	var errs validation.Errors
	r.Email = validation.NormalizeEmail(r.Email)
	validation.CheckEmail(&errs, r.Email)
	if r.Password == "" {
		errs.Add("password", "is required")
	}
	return errs
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// unchanged. Email is deliberately not a field here: it cannot change
// through this path no matter what the payload contains.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`
}

// Validate checks only the fields present in the payload. An empty password
// is not an error; it means "no change".
func (r *UpdateProfileRequest) Validate() validation.Errors {
	var errs validation.Errors
	if r.FirstName != nil {
		validation.CheckName(&errs, "firstName", *r.FirstName)
	}
	if r.LastName != nil {
		validation.CheckName(&errs, "lastName", *r.LastName)
	}
	if r.Phone != nil {
		validation.CheckPhone(&errs, *r.Phone)
	}
	if r.Password != nil && *r.Password != "" {
		validation.CheckPassword(&errs, *r.Password)
	}
	return errs
}

// UserResponse is the external view of a user record. The password hash has
// no field here, so it can never serialize.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type AuthData struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type UserListData struct {
	Users      []UserResponse `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

type HealthData struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Data    any                     `json:"data,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}
