package notification

import (
	"fmt"

	"SmartCampus/internal/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// audience describes which notifications a role can see: everything sent
// to its broadcast type, plus everything sent to its direct type. When
// byRecipient is set a direct notification must also name the caller.
type audience struct {
	broadcast   RecipientType
	direct      RecipientType
	byRecipient bool
}

// audiences is the visibility policy. admin and super_admin only share
// all_admins broadcasts; neither sees the other's direct notifications.
var audiences = map[auth.Role]audience{
	auth.RoleTeacher:    {broadcast: RecipientAllTeachers, direct: RecipientTeacher, byRecipient: true},
	auth.RoleAdmin:      {broadcast: RecipientAllAdmins, direct: RecipientAdmin},
	auth.RoleSuperAdmin: {broadcast: RecipientAllAdmins, direct: RecipientSuperAdmin},
}

// Caller is the authenticated user a query runs for.
type Caller struct {
	ID   primitive.ObjectID
	Role auth.Role
}

// Visibility selects the notifications visible to one caller.
type Visibility struct {
	caller     Caller
	audience   audience
	excludeOwn bool
	unreadOnly bool
}

// VisibleTo returns the visible set of c: its audience minus the
// notifications c sent.
func VisibleTo(c Caller) (Visibility, error) {
	a, ok := audiences[c.Role]
	if !ok {
		return Visibility{}, fmt.Errorf("no notification audience for role %q", c.Role)
	}
	return Visibility{caller: c, audience: a, excludeOwn: true}, nil
}

// Unread narrows v to unread notifications.
func (v Visibility) Unread() Visibility {
	v.unreadOnly = true
	return v
}

// IncludingOwn drops the sender exclusion.
func (v Visibility) IncludingOwn() Visibility {
	v.excludeOwn = false
	return v
}

// Filter renders v as a MongoDB query.
func (v Visibility) Filter() bson.M {
	direct := bson.M{"recipientType": v.audience.direct}
	if v.audience.byRecipient {
		direct["recipientId"] = v.caller.ID
	}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"recipientType": v.audience.broadcast},
			direct,
		},
	}
	if v.excludeOwn {
		filter["senderId"] = bson.M{"$ne": v.caller.ID}
	}
	if v.unreadOnly {
		filter["isRead"] = false
	}
	return filter
}

// Matches evaluates v against a single notification, agreeing with Filter.
func (v Visibility) Matches(n *Notification) bool {
	if v.excludeOwn && n.SenderID == v.caller.ID {
		return false
	}
	if v.unreadOnly && n.IsRead {
		return false
	}
	switch n.RecipientType {
	case v.audience.broadcast:
		return true
	case v.audience.direct:
		if !v.audience.byRecipient {
			return true
		}
		return n.RecipientID != nil && *n.RecipientID == v.caller.ID
	}
	return false
}
