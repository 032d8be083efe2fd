package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleUser  Role = "USER"
	RoleHost  Role = "HOST"
	RoleAdmin Role = "ADMIN"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleHost, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// CanHostEvents reports whether the role may create and manage events.
func (r Role) CanHostEvents() bool {
	return r == RoleHost || r == RoleAdmin
}
