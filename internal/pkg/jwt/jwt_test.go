package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "reception", "RECEPTIONIST", "secret", 15)
	assert.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "reception", claims.Username)
	assert.Equal(t, "RECEPTIONIST", claims.Role)
	assert.Equal(t, "gymdesk", claims.Issuer)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "reception", "RECEPTIONIST", "secret", 15)
	assert.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(7, "reception", "RECEPTIONIST", "secret", -1)
	assert.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not-a-jwt", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id", "refresh-secret", 7)
	assert.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "token-id", claims.TokenID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	// An access token must not validate with the refresh secret and
	// vice versa.
	access, err := GenerateAccessToken(7, "reception", "RECEPTIONIST", "secret", 15)
	assert.NoError(t, err)

	_, err = ValidateRefreshToken(access, "refresh-secret")
	assert.Error(t, err)
}
