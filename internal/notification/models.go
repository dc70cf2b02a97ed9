package notification

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipientType selects who a notification is addressed to.
type RecipientType string

const (
	RecipientAdmin       RecipientType = "admin"
	RecipientSuperAdmin  RecipientType = "super_admin"
	RecipientAllAdmins   RecipientType = "all_admins"
	RecipientTeacher     RecipientType = "teacher"
	RecipientAllTeachers RecipientType = "all_teachers"
)

// Broadcast reports whether the type targets a whole class of users.
func (t RecipientType) Broadcast() bool {
	return t == RecipientAllAdmins || t == RecipientAllTeachers
}

func (t RecipientType) Valid() bool {
	switch t {
	case RecipientAdmin, RecipientSuperAdmin, RecipientAllAdmins, RecipientTeacher, RecipientAllTeachers:
		return true
	}
	return false
}

// RecipientModel names the collection a recipientId points into.
type RecipientModel string

const (
	ModelAdmin   RecipientModel = "Admin"
	ModelTeacher RecipientModel = "Teacher"
)

type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeSuccess, TypeError:
		return true
	}
	return false
}

// Notification is a message shown in a user's notification feed.
type Notification struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	RecipientType  RecipientType       `bson:"recipientType" json:"recipientType"`
	RecipientID    *primitive.ObjectID `bson:"recipientId,omitempty" json:"recipientId,omitempty"`
	RecipientModel RecipientModel      `bson:"recipientModel,omitempty" json:"recipientModel,omitempty"`
	SenderID       primitive.ObjectID  `bson:"senderId" json:"senderId"`
	Title          string              `bson:"title" json:"title"`
	Message        string              `bson:"message" json:"message"`
	Type           Type                `bson:"type" json:"type"`
	Link           string              `bson:"link,omitempty" json:"link,omitempty"`
	IsRead         bool                `bson:"isRead" json:"isRead"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

var (
	ErrNotFound         = errors.New("notification not found")
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrInvalidType      = errors.New("invalid notification type")
)

// Validate checks the enums and that individually targeted notifications,
// and only those, carry a recipient reference.
func (n *Notification) Validate() error {
	if !n.RecipientType.Valid() {
		return ErrInvalidRecipient
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if !n.Type.Valid() {
		return ErrInvalidType
	}
	if n.RecipientType.Broadcast() {
		if n.RecipientID != nil || n.RecipientModel != "" {
			return ErrInvalidRecipient
		}
		return nil
	}
	if n.RecipientID == nil {
		return ErrInvalidRecipient
	}
	want := ModelAdmin
	if n.RecipientType == RecipientTeacher {
		want = ModelTeacher
	}
	if n.RecipientModel == "" {
		n.RecipientModel = want
	}
	if n.RecipientModel != want {
		return ErrInvalidRecipient
	}
	return nil
}
