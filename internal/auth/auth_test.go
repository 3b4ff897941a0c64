package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "secret1"
	hash, err := HashPassword(password)

	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, PasswordCost, cost)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	require.True(t, CheckPasswordHash("secret1", hash), "Password should match the hash")
	require.False(t, CheckPasswordHash("wrong", hash), "Wrong password should not match the hash")
	require.False(t, CheckPasswordHash("secret1", "not-a-hash"))
}

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	require.NoError(t, err)
	b, err := NewSessionToken()
	require.NoError(t, err)

	require.Len(t, a, sessionTokenLength)
	require.NotEqual(t, a, b)
}

func TestSignAndVerifySessionCookie(t *testing.T) {
	secret := "cookie_secret_for_tests"
	token, err := NewSessionToken()
	require.NoError(t, err)

	value, err := SignSessionCookie(42, token, secret, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := VerifySessionCookie(value, secret)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, token, claims.SessionToken)

	_, err = VerifySessionCookie(value, "wrong_secret")
	require.ErrorIs(t, err, jwt.ErrSignatureInvalid)

	expired, err := SignSessionCookie(42, token, secret, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = VerifySessionCookie(expired, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = VerifySessionCookie("garbage", secret)
	require.Error(t, err)
}
