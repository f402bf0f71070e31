// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a member of exactly one team.
//
// NOTE:
//   - PasswordHash holds the bcrypt hash of either the temporary password
//     issued at invite time or a password the user chose later. It is never
//     serialized to JSON.
//   - Confirmed flips to true once, through the emailed confirmation link.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"first_name" json:"firstName"`
	LastName     string             `bson:"last_name" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Confirmed    bool               `bson:"confirmed" json:"confirmed"`
	TeamID       primitive.ObjectID `bson:"team_id" json:"teamId"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName joins first and last name for display (emails, logs).
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
