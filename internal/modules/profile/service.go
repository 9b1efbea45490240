package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"civicconnect/internal/domain"
	"civicconnect/internal/pkg/validator"
)

const bcryptCost = 12

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

// UpdateProfile copies the allow-listed fields onto the caller's record.
// Uniqueness is only re-checked for identifiers that actually changed, so
// saving your own unchanged email never conflicts with yourself.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req ProfileRequest) (*domain.User, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	phone := strings.TrimSpace(req.Phone)

	if email != user.Email {
		if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		} else if taken {
			return nil, ErrEmailTaken
		}
	}
	if username != user.Username {
		if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		} else if taken {
			return nil, ErrUsernameTaken
		}
	}
	if phone != user.Phone {
		if taken, err := s.users.ExistsByPhone(ctx, phone); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		} else if taken {
			return nil, ErrPhoneTaken
		}
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Username = username
	user.Email = email
	user.Phone = phone
	user.Address = strings.TrimSpace(req.Address)
	user.Age = req.Age
	user.Sex = req.Sex

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

// ChangePassword verifies the current password before accepting a new one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, req PasswordRequest) error {
	if fields := validator.Validate(req); fields != nil {
		return &ValidationError{Fields: fields}
	}
	if req.NewPassword != req.ConfirmPassword {
		return &ValidationError{Fields: map[string]string{"ConfirmPassword": "eqfield"}}
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
