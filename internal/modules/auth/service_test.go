package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"civicconnect/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func validSignup() SignupRequest {
	return SignupRequest{
		FirstName: "Aruzhan",
		LastName:  "Bekova",
		Username:  "aruzhan",
		Email:     "Aruzhan@Example.com",
		Phone:     "7015550123",
		Password:  "sekret1",
	}
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("ExistsByEmail", mock.Anything, "aruzhan@example.com").Return(false, nil)
	users.On("ExistsByUsername", mock.Anything, "aruzhan").Return(false, nil)
	users.On("ExistsByPhone", mock.Anything, "7015550123").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "aruzhan@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "sekret1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("sekret1")))
}

func TestRegister_ShortPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	req := validSignup()
	req.Password = "abc"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "min", verr.Fields["Password"])
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("ExistsByEmail", mock.Anything, "aruzhan@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), validSignup())
	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)
	users.On("ExistsByUsername", mock.Anything, "aruzhan").Return(true, nil)

	_, err := svc.Register(context.Background(), validSignup())
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("sekret1"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByIdentifier", mock.Anything, "aruzhan").
		Return(&domain.User{ID: 5, Username: "aruzhan", PasswordHash: string(hash)}, nil)

	user, loginErr := svc.Login(context.Background(), LoginRequest{Identifier: "aruzhan", Password: "sekret1"})
	require.NoError(t, loginErr)
	assert.Equal(t, int64(5), user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	hash, err := bcrypt.GenerateFromPassword([]byte("sekret1"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetByIdentifier", mock.Anything, "aruzhan").
		Return(&domain.User{ID: 5, PasswordHash: string(hash)}, nil)

	_, loginErr := svc.Login(context.Background(), LoginRequest{Identifier: "aruzhan", Password: "wrong"})
	assert.ErrorIs(t, loginErr, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("GetByIdentifier", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Identifier: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithGoogle_ExistingGoogleAccount(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("GetByGoogleID", mock.Anything, "g-123").
		Return(&domain.User{ID: 9, GoogleID: "g-123"}, nil)

	user, err := svc.LoginWithGoogle(context.Background(), GoogleProfile{ID: "g-123", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginWithGoogle_LinksByEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("GetByGoogleID", mock.Anything, "g-123").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "a@example.com").
		Return(&domain.User{ID: 9, Email: "a@example.com"}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 9 && u.GoogleID == "g-123"
	})).Return(nil)

	user, err := svc.LoginWithGoogle(context.Background(), GoogleProfile{ID: "g-123", Email: "A@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "g-123", user.GoogleID)
	users.AssertExpectations(t)
}

func TestLoginWithGoogle_CreatesNewUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("GetByGoogleID", mock.Anything, "g-456").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "new.person@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("ExistsByUsername", mock.Anything, "new.person").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.LoginWithGoogle(context.Background(), GoogleProfile{
		ID:            "g-456",
		Email:         "new.person@example.com",
		GivenName:     "New",
		FamilyName:    "Person",
		VerifiedEmail: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "new.person", user.Username)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.PasswordHash)
}

func TestLoginWithGoogle_UsernameCollisionGetsSuffix(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	users.On("GetByGoogleID", mock.Anything, "g-789").Return(nil, gorm.ErrRecordNotFound)
	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("ExistsByUsername", mock.Anything, "taken").Return(true, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.LoginWithGoogle(context.Background(), GoogleProfile{ID: "g-789", Email: "taken@example.com"})
	require.NoError(t, err)

	assert.NotEqual(t, "taken", user.Username)
	assert.Contains(t, user.Username, "taken-")
}

func TestLoginWithGoogle_NoEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	_, err := svc.LoginWithGoogle(context.Background(), GoogleProfile{ID: "g-000"})
	assert.ErrorIs(t, err, ErrValidation)
}
