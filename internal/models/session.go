package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login record. Token is the opaque value carried
// (signed) in the session cookie.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"userId"`
	Token     string    `json:"-"`
	UserAgent string    `json:"userAgent"`
	ClientIP  string    `json:"clientIp"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
