package session

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is the token pair issued by login or refresh.
type Credential struct {
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitzero"`
}

// NewCredential builds a Credential from a login/refresh response where the
// lifetime is given in seconds. A non-positive expiresIn falls back to the
// JWT exp claim when there is one.
func NewCredential(accessToken, refreshToken string, expiresIn int64, now time.Time) Credential {
	c := Credential{AccessToken: accessToken, RefreshToken: refreshToken}
	if expiresIn > 0 {
		c.ExpiresAt = now.Add(time.Duration(expiresIn) * time.Second)
	} else if claims, ok := ParseClaims(accessToken); ok && claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c
}

// Expired reports whether ExpiresAt is known and not after now.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// UserInfo is the signed-in user's profile as returned by login.
type UserInfo struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Avatar   string   `json:"avatar,omitempty"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the user carries role.
func (u UserInfo) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// IsAdmin reports whether the user carries the admin role.
func (u UserInfo) IsAdmin() bool {
	return u.HasRole("admin")
}

// Claims is the subset of an access-token payload the client cares about.
type Claims struct {
	UserID   string   `json:"uid,omitempty"`
	Username string   `json:"username,omitempty"`
	Role     string   `json:"role,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the payload of a JWT access token without verifying
// its signature. It returns false for opaque or malformed tokens.
func ParseClaims(token string) (Claims, bool) {
	var claims Claims
	if token == "" {
		return claims, false
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, false
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.Role != "" && !slices.Contains(claims.Roles, claims.Role) {
		claims.Roles = append(claims.Roles, claims.Role)
	}
	return claims, true
}
