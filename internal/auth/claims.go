package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"pqr-api/internal/domain"
)

// Claims are the JWT claims issued on login. Subject carries the username so
// tokens stay readable in telephony integrations that log them partially.
type Claims struct {
	UserID int64      `json:"uid"`
	Rol    domain.Rol `json:"rol"`
	jwt.RegisteredClaims
}

// Validate performs additional validation on custom claims
func (c *Claims) Validate() error {
	if c.Subject == "" {
		return jwt.ErrTokenInvalidClaims
	}
	if c.UserID == 0 {
		return jwt.ErrTokenInvalidClaims
	}
	if !c.Rol.IsValid() {
		return jwt.ErrTokenInvalidClaims
	}
	return nil
}
