package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
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

func (s *Service) Register(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	phone := strings.TrimSpace(req.Phone)

	if taken, err := s.users.ExistsByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.users.ExistsByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := s.users.ExistsByPhone(ctx, phone); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	} else if taken {
		return nil, ErrPhoneTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

// Login accepts an email or a username as the identifier. Lookup misses and
// password mismatches return the same error.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	user, err := s.users.GetByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LoginWithGoogle finds or creates the local account for a Google profile.
// An existing account with the same email gets linked rather than duplicated.
func (s *Service) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*domain.User, error) {
	if profile.Email == "" {
		return nil, fmt.Errorf("%w: google profile has no email", ErrValidation)
	}

	user, err := s.users.GetByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))

	user, err = s.users.GetByEmail(ctx, email)
	if err == nil {
		user.GoogleID = profile.ID
		if user.AvatarURL == "" {
			user.AvatarURL = profile.Picture
		}
		user.IsVerified = user.IsVerified || profile.VerifiedEmail
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	username, err := s.pickUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user = &domain.User{
		FirstName:  profile.GivenName,
		LastName:   profile.FamilyName,
		Username:   username,
		Email:      email,
		GoogleID:   profile.ID,
		Role:       domain.RoleUser,
		IsVerified: profile.VerifiedEmail,
		AvatarURL:  profile.Picture,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

// pickUsername derives a username from the email local part, suffixing it
// when taken.
func (s *Service) pickUsername(ctx context.Context, email string) (string, error) {
	base := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		base = email[:at]
	}
	if len(base) < 3 {
		base = "user-" + base
	}

	taken, err := s.users.ExistsByUsername(ctx, base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !taken {
		return base, nil
	}
	return base + "-" + uuid.NewString()[:8], nil
}
