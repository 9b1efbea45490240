package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	GoogleID     string
	Role         UserRole
	IsVerified   bool
	Address      string
	Age          int // 0 = not provided
	Sex          string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName is what public report listings show as the reporter.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "User"
}
