// Package auth issues and verifies the access tokens of the development
// API server.
package auth

import (
	"time"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity the admin client reads back from the token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string   `json:"uid"`
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
}

// Identity is the subject a token is issued for.
type Identity struct {
	UserID   string
	Username string
	Roles    []string
}

func GenerateToken(id Identity, secretKey []byte, validityDuration time.Duration, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   id.UserID,
		Username: id.Username,
		Roles:    id.Roles,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
