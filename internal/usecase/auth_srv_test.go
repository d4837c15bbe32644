package usecase

import (
	"context"
	"testing"

	"mess-booking/internal/data/entity"
	"mess-booking/internal/data/repository"
	"mess-booking/internal/dto/request"
	"mess-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	repo := &repository.Repository{User: userRepo, Booking: newFakeBookingRepo()}
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 168},
	}
	return NewAuthService(repo, config, zap.NewNop()), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	service, userRepo := newAuthFixture()

	registered, err := service.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.UserID)

	stored, _ := userRepo.FindByEmail(context.Background(), "ravi@example.com")
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleStudent, stored.Role)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)

	auth, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "ravi@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, auth.UserID)
	assert.Equal(t, "student", auth.Role)

	claims, err := utils.ParseToken("test-secret", auth.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture()

	req := &request.RegisterRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Password: "correct horse battery",
	}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newAuthFixture()

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Name:     "R",
		Email:    "not-an-email",
		Password: "short",
	})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestLoginWrongCredentials(t *testing.T) {
	service, _ := newAuthFixture()

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &request.LoginRequest{
		Email:    "ravi@example.com",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}
