package dto

import "github.com/mrops-br/entity-storefront/internal/domain"

// LoginRequest is accepted as-is; the mock login never checks credentials
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserResponse struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func ToUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		Name:  u.Name,
		Role:  string(u.Role),
		Phone: u.Phone,
		Email: u.Email,
	}
}
