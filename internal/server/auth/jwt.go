// Package auth issues and validates the signed session credential carried in
// the browser cookie. A successfully authenticated user is turned into a
// session token holding the claims the rest of the app needs; nothing else
// is session state.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/accountdesk/internal/common"
	"github.com/dmitrijs2005/accountdesk/internal/server/models"
)

// Claims are the session claims: standard registered claims plus the user's
// identity and whether the session was requested as persistent.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Remember bool   `json:"remember"`
}

// GenerateToken signs a session token for the given user. The display name
// claim falls back to the email when the user never set one. validity
// determines the expiry; remember is recorded so sliding renewal can reissue
// with the same lifetime.
func GenerateToken(user *models.User, remember bool, secretKey []byte, validity time.Duration) (string, error) {
	name := user.DisplayName
	if name == "" {
		name = user.Email
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID:   user.ID,
		Name:     name,
		Email:    user.Email,
		Remember: remember,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetClaimsFromToken parses and verifies a session token and returns its
// claims. Expired, tampered, or otherwise malformed tokens yield
// common.ErrInvalidToken.
func GetClaimsFromToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ShouldRenew reports whether a valid session has passed half of its window
// and the cookie should be reissued (sliding expiration).
func ShouldRenew(claims *Claims, now time.Time) bool {
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return false
	}
	half := claims.ExpiresAt.Sub(claims.IssuedAt.Time) / 2
	return now.After(claims.IssuedAt.Add(half))
}
