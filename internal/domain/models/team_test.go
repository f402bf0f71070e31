package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTeam_HasAdmin(t *testing.T) {
	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := Team{
		MemberIDs: []primitive.ObjectID{admin, member},
		AdminIDs:  []primitive.ObjectID{admin},
	}

	tests := []struct {
		name string
		ids  []string
		want bool
	}{
		{"empty session", nil, false},
		{"member only", []string{member.Hex()}, false},
		{"admin only", []string{admin.Hex()}, true},
		{"admin among others", []string{primitive.NewObjectID().Hex(), member.Hex(), admin.Hex()}, true},
		{"malformed ids ignored", []string{"not-an-id", admin.Hex()}, true},
		{"only malformed", []string{"zzz"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := team.HasAdmin(tt.ids); got != tt.want {
				t.Errorf("HasAdmin(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestTeam_HasAdmin_NoAdmins(t *testing.T) {
	team := Team{MemberIDs: []primitive.ObjectID{primitive.NewObjectID()}}
	if team.HasAdmin([]string{team.MemberIDs[0].Hex()}) {
		t.Error("team without admins should never report an admin")
	}
}

func TestTeam_FirstAdmin(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()
	member := primitive.NewObjectID()
	team := Team{
		MemberIDs: []primitive.ObjectID{first, second, member},
		AdminIDs:  []primitive.ObjectID{first, second},
	}

	got, ok := team.FirstAdmin([]string{"bad", member.Hex(), second.Hex(), first.Hex()})
	if !ok || got != second {
		t.Errorf("FirstAdmin = %v, %v; want %v, true", got, ok, second)
	}

	got, ok = team.FirstAdmin([]string{member.Hex(), "bad"})
	if ok || !got.IsZero() {
		t.Errorf("FirstAdmin for non-admins = %v, %v; want zero, false", got, ok)
	}
}

func TestTeam_Normalize_AdminsBecomeMembers(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	team := Team{
		MemberIDs: []primitive.ObjectID{b, a, b},
		AdminIDs:  []primitive.ObjectID{a, c},
	}

	team.Normalize()

	want := []primitive.ObjectID{b, a, c}
	if len(team.MemberIDs) != len(want) {
		t.Fatalf("members: got %v, want %v", team.MemberIDs, want)
	}
	for i := range want {
		if team.MemberIDs[i] != want[i] {
			t.Errorf("members[%d]: got %s, want %s", i, team.MemberIDs[i].Hex(), want[i].Hex())
		}
	}
	for _, id := range team.AdminIDs {
		if !team.HasMember(id) {
			t.Errorf("admin %s is not a member", id.Hex())
		}
	}
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tt := range tests {
		u := User{FirstName: tt.first, LastName: tt.last}
		if got := u.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}
