package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jaevor/go-nanoid"
)

const (
	sessionTokenLength = 40
	issuer             = "notig"
)

// SessionClaims is the signed envelope stored in the session cookie. It only
// references a server-side session; the session row stays authoritative.
type SessionClaims struct {
	UserID       int64  `json:"uid"`
	SessionToken string `json:"sid"`
	jwt.RegisteredClaims
}

// NewSessionToken returns a random opaque session token.
func NewSessionToken() (string, error) {
	generateID, err := nanoid.Standard(sessionTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return generateID(), nil
}

func SignSessionCookie(userID int64, sessionToken, secret string, expiresAt time.Time) (string, error) {
	claims := &SessionClaims{
		UserID:       userID,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return signed, nil
}

func VerifySessionCookie(value, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid && claims.SessionToken != "" {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
