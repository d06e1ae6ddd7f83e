package models

import "github.com/dmitrijs2005/adminapi/internal/client/session"

// LoginParams is the body of POST /auth/login.
type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha,omitempty"`
}

// LoginResponse is the data member of a successful login.
type LoginResponse struct {
	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
	ExpiresIn    int64            `json:"expiresIn"`
	UserInfo     session.UserInfo `json:"userInfo"`
}

// RefreshTokenRequest is the body of POST /auth/refresh-token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenResponse is the data member of a successful refresh.
type RefreshTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}
