package httpapi

import (
	"time"

	"github.com/dmitrijs2005/adminapi/internal/server/users"
)

const timeLayout = "2006-01-02 15:04:05"

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Captcha  string `json:"captcha"`
}

type userInfo struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Avatar   string   `json:"avatar,omitempty"`
	Roles    []string `json:"roles"`
}

type loginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	ExpiresIn    int64    `json:"expiresIn"`
	UserInfo     userInfo `json:"userInfo"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type refreshResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type userDTO struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	CreateTime string `json:"createTime"`
	Status     int    `json:"status"`
}

type userForm struct {
	Username string   `json:"username" validate:"omitempty,min=2,max=64"`
	Password string   `json:"password" validate:"omitempty,max=128"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Phone    string   `json:"phone" validate:"omitempty,max=32"`
	Avatar   string   `json:"avatar" validate:"omitempty,max=512"`
	Roles    []string `json:"roles" validate:"omitempty,dive,oneof=admin viewer"`
}

type batchDeleteRequest struct {
	IDs []string `json:"ids"`
}

type avatarUpload struct {
	URL string `json:"url"`
}

func toUserInfo(u *users.User) userInfo {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return userInfo{UserID: u.ID, Username: u.UserName, Avatar: u.Avatar, Roles: roles}
}

func toUserDTO(u *users.User) userDTO {
	return userDTO{
		ID:         u.ID,
		Username:   u.UserName,
		Email:      u.Email,
		Phone:      u.Phone,
		Avatar:     u.Avatar,
		CreateTime: u.CreatedAt.Format(timeLayout),
		Status:     u.Status,
	}
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
