// Package models holds the plain data records persisted by the identity
// backend.
package models

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles. It is set only at creation; role
// escalation through the profile path must fail.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps a wire string onto a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User is the durable profile record. Name is plaintext in memory and
// encrypted at rest; LastLogin is nil until the first successful login.
type User struct {
	ID        string
	Name      string
	Role      Role
	LastLogin *time.Time
	CreatedAt time.Time
}
