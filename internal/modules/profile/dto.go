package profile

import (
	"civicconnect/internal/domain"
)

// ProfileRequest is the allow-listed set of fields a user can change about
// themselves. Nothing outside this struct ever reaches the record.
type ProfileRequest struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" form:"lastName" validate:"required,max=50"`
	Username  string `json:"username" form:"username" validate:"required,min=3,max=30"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Phone     string `json:"phoneNumber" form:"phoneNumber" validate:"required,len=10,numeric"`
	Address   string `json:"address" form:"address" validate:"max=200"`
	Age       int    `json:"age" form:"age" validate:"omitempty,gte=1,lte=120"`
	Sex       string `json:"sex" form:"sex" validate:"omitempty,oneof=male female other"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required"`
}

type Response struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	Age       int    `json:"age,omitempty"`
	Sex       string `json:"sex,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
}

func toResponse(u *domain.User) Response {
	return Response{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Age:       u.Age,
		Sex:       u.Sex,
		AvatarURL: u.AvatarURL,
		Role:      string(u.Role),
	}
}
