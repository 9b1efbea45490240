package auth

import (
	"civicconnect/internal/domain"
)

type SignupRequest struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" form:"lastName" validate:"required,max=50"`
	Username  string `json:"username" form:"username" validate:"required,min=3,max=30"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Phone     string `json:"phoneNumber" form:"phoneNumber" validate:"required,len=10,numeric"`
	Password  string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginRequest accepts a username or an email in the same field.
type LoginRequest struct {
	Identifier string `json:"username" form:"username" validate:"required"`
	Password   string `json:"password" form:"password" validate:"required"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
	}
}
