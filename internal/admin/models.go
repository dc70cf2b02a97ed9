// Package admin holds the Admin entity shared by the API server and the
// campusctl provisioning command.
package admin

import (
	"errors"
	"time"

	"SmartCampus/internal/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleDepartmentAdmin Role = "department_admin"
)

func (r Role) Valid() bool {
	return r == RoleSuperAdmin || r == RoleDepartmentAdmin
}

// TokenRole maps the stored role to the role carried in access tokens.
func (r Role) TokenRole() auth.Role {
	if r == RoleSuperAdmin {
		return auth.RoleSuperAdmin
	}
	return auth.RoleAdmin
}

var (
	ErrNotFound           = errors.New("admin not found")
	ErrDuplicate          = errors.New("email or firebase uid already registered")
	ErrSuperAdminExists   = errors.New("a super admin already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid admin role")
)

// Admin is a staff account that can sign in to the dashboard.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	FirebaseUID  string             `bson:"firebaseUid,omitempty" json:"firebaseUid,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	Department   string             `bson:"department,omitempty" json:"department,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
