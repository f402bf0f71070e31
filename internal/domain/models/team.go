// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team groups users. Admins are the subset of members allowed to invite.
type Team struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	NameCI    string               `bson:"name_ci" json:"-"`
	MemberIDs []primitive.ObjectID `bson:"member_ids" json:"memberIds"`
	AdminIDs  []primitive.ObjectID `bson:"admin_ids" json:"adminIds"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasAdmin reports whether any of the given user ids (hex strings, as held in
// a session) is an admin of this team. Ids that do not parse are ignored.
func (t Team) HasAdmin(userIDs []string) bool {
	_, ok := t.FirstAdmin(userIDs)
	return ok
}

// FirstAdmin returns the first of userIDs that is an admin of this team.
func (t Team) FirstAdmin(userIDs []string) (primitive.ObjectID, bool) {
	if len(t.AdminIDs) == 0 || len(userIDs) == 0 {
		return primitive.NilObjectID, false
	}
	admins := make(map[primitive.ObjectID]struct{}, len(t.AdminIDs))
	for _, id := range t.AdminIDs {
		admins[id] = struct{}{}
	}
	for _, s := range userIDs {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			continue
		}
		if _, ok := admins[oid]; ok {
			return oid, true
		}
	}
	return primitive.NilObjectID, false
}

// HasMember reports whether id is listed as a member.
func (t Team) HasMember(id primitive.ObjectID) bool {
	for _, m := range t.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}

// Normalize folds every admin into the member list so that admins are
// always members. Member order is preserved and duplicates are dropped.
func (t *Team) Normalize() {
	seen := make(map[primitive.ObjectID]struct{}, len(t.MemberIDs)+len(t.AdminIDs))
	members := make([]primitive.ObjectID, 0, len(t.MemberIDs)+len(t.AdminIDs))
	for _, id := range append(append([]primitive.ObjectID{}, t.MemberIDs...), t.AdminIDs...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	t.MemberIDs = members
	if t.AdminIDs == nil {
		t.AdminIDs = []primitive.ObjectID{}
	}
}
