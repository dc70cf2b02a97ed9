package auth

import "fmt"

// Role is the caller role carried in access tokens.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleTeacher    Role = "teacher"
)

// Roles lists every role a token may carry.
var Roles = []Role{RoleAdmin, RoleSuperAdmin, RoleTeacher}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// IsAdmin reports whether the role belongs to the admin staff (admin or super_admin).
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
