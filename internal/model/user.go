package model

import (
	"fmt"
)

// Role is the closed set of account roles. Role is immutable after signup.
type Role string

const (
	RoleClient Role = "client"
	RoleLawyer Role = "lawyer"
)

// ParseRole validates a raw role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient:
		return RoleClient, nil
	case RoleLawyer:
		return RoleLawyer, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	Base
	Role         Role   `db:"role" json:"role"`
	Name         string `db:"name" json:"name"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	PhotoURL     string `db:"photo_url" json:"photo_url,omitempty"`
}
