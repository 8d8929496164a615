package services

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/adapters/persistence/models"
	"gymdesk/internal/config"
	"gymdesk/internal/pkg/jwt"
	"gymdesk/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newAuthServiceForTest() (*AuthService, *MockUserRepo, *MockRefreshTokenRepo) {
	userRepo := new(MockUserRepo)
	refreshTokenRepo := new(MockRefreshTokenRepo)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(userRepo, refreshTokenRepo, cfg), userRepo, refreshTokenRepo
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("correct-password")
	assert.NoError(t, err)

	user := &models.User{ID: 1, Name: "Front Desk", Username: "reception", Password: hashed, Role: "RECEPTIONIST"}

	t.Run("valid credentials", func(t *testing.T) {
		svc, userRepo, refreshTokenRepo := newAuthServiceForTest()
		userRepo.On("GetByUsername", mock.Anything, "reception").Return(user, nil)
		refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

		resp, err := svc.Login(context.Background(), &LoginInput{Username: "reception", Password: "correct-password"})

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "RECEPTIONIST", resp.User.Role)

		claims, err := jwt.ValidateAccessToken(resp.AccessToken, "test-access-secret")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		refreshTokenRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, refreshTokenRepo := newAuthServiceForTest()
		userRepo.On("GetByUsername", mock.Anything, "reception").Return(user, nil)

		_, err := svc.Login(context.Background(), &LoginInput{Username: "reception", Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		refreshTokenRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		svc, userRepo, _ := newAuthServiceForTest()
		userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(context.Background(), &LoginInput{Username: "ghost", Password: "whatever"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	svc, userRepo, refreshTokenRepo := newAuthServiceForTest()

	user := &models.User{ID: 1, Username: "reception", Role: "RECEPTIONIST"}
	refreshToken, err := jwt.GenerateRefreshToken(1, "token-id", "test-refresh-secret", 7)
	assert.NoError(t, err)
	tokenHash := password.HashToken(refreshToken)

	refreshTokenRepo.On("GetByTokenHash", mock.Anything, tokenHash).Return(&models.RefreshToken{
		ID:        10,
		UserID:    1,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil)
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(user, nil)
	refreshTokenRepo.On("RevokeByTokenHash", mock.Anything, tokenHash).Return(nil)
	refreshTokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	resp, err := svc.RefreshToken(context.Background(), refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, refreshToken, resp.RefreshToken, "rotation issues a fresh refresh token")
	refreshTokenRepo.AssertCalled(t, "RevokeByTokenHash", mock.Anything, tokenHash)
}

func TestAuthService_RefreshToken_Rejections(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		svc, _, _ := newAuthServiceForTest()

		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		svc, _, refreshTokenRepo := newAuthServiceForTest()

		refreshToken, err := jwt.GenerateRefreshToken(1, "token-id", "test-refresh-secret", 7)
		assert.NoError(t, err)
		tokenHash := password.HashToken(refreshToken)
		revokedAt := time.Now().Add(-time.Hour)

		refreshTokenRepo.On("GetByTokenHash", mock.Anything, tokenHash).Return(&models.RefreshToken{
			UserID:    1,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(24 * time.Hour),
			RevokedAt: &revokedAt,
		}, nil)

		_, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("expired stored row", func(t *testing.T) {
		svc, _, refreshTokenRepo := newAuthServiceForTest()

		refreshToken, err := jwt.GenerateRefreshToken(1, "token-id", "test-refresh-secret", 7)
		assert.NoError(t, err)
		tokenHash := password.HashToken(refreshToken)

		refreshTokenRepo.On("GetByTokenHash", mock.Anything, tokenHash).Return(&models.RefreshToken{
			UserID:    1,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)

		_, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token not in database", func(t *testing.T) {
		svc, _, refreshTokenRepo := newAuthServiceForTest()

		refreshToken, err := jwt.GenerateRefreshToken(1, "token-id", "test-refresh-secret", 7)
		assert.NoError(t, err)

		refreshTokenRepo.On("GetByTokenHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		_, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, refreshTokenRepo := newAuthServiceForTest()

	refreshTokenRepo.On("RevokeByTokenHash", mock.Anything, password.HashToken("some-token")).Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), "some-token"))
	refreshTokenRepo.AssertExpectations(t)
}

func TestAuthService_LogoutAll(t *testing.T) {
	svc, _, refreshTokenRepo := newAuthServiceForTest()

	refreshTokenRepo.On("RevokeAllByUserID", mock.Anything, uint(7)).Return(nil)

	assert.NoError(t, svc.LogoutAll(context.Background(), 7))
	refreshTokenRepo.AssertExpectations(t)
}
