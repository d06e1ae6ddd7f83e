package users

import (
	"slices"
	"time"
)

// Status values of a managed account.
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)

// RoleAdmin may manage other accounts.
const RoleAdmin = "admin"

type User struct {
	ID        string
	UserName  string
	Email     string
	Phone     string
	Avatar    string
	Status    int
	Roles     []string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return slices.Contains(u.Roles, RoleAdmin)
}

// Filter narrows List. Empty fields match everything; Username and Email
// match by substring.
type Filter struct {
	Username string
	Email    string
	Status   *int
}

// Changes is a partial update; empty fields are left as they are.
type Changes struct {
	UserName string
	Password string
	Email    string
	Phone    string
	Avatar   string
	Roles    []string
}
