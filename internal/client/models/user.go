package models

import (
	"net/url"
	"strconv"
)

// UserStatus is the account state of a managed user.
type UserStatus int

const (
	UserDisabled UserStatus = 0
	UserEnabled  UserStatus = 1
)

func (s UserStatus) String() string {
	if s == UserEnabled {
		return "enabled"
	}
	return "disabled"
}

// User is a managed account as listed by /users.
type User struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	CreateTime string     `json:"createTime"`
	Status     UserStatus `json:"status"`
}

// UserQuery filters the user list. Zero fields are not sent.
type UserQuery struct {
	Username string
	Email    string
	Status   *UserStatus
}

// Values encodes q as query parameters.
func (q UserQuery) Values() url.Values {
	v := url.Values{}
	if q.Username != "" {
		v.Set("username", q.Username)
	}
	if q.Email != "" {
		v.Set("email", q.Email)
	}
	if q.Status != nil {
		v.Set("status", strconv.Itoa(int(*q.Status)))
	}
	return v
}

// UserForm is the body of create and update calls. On update only the
// non-empty fields are changed.
type UserForm struct {
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// BatchDeleteRequest is the body of DELETE /users/batch.
type BatchDeleteRequest struct {
	IDs []string `json:"ids"`
}

// AvatarUpload is the data member of a successful avatar upload.
type AvatarUpload struct {
	URL string `json:"url"`
}
