package userstore_test

import (
	"errors"
	"sort"
	"strings"
	"testing"

	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/authutil"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/dalemusser/teamhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := authutil.HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return h
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teamID := primitive.NewObjectID()
	created, err := store.Create(ctx, models.User{
		FirstName: "  Ada ",
		LastName:  "<b>Lovelace</b>",
		Email:     " Ada@Example.COM ",
		TeamID:    teamID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.FirstName != "Ada" || created.LastName != "Lovelace" {
		t.Errorf("names not normalized: %q %q", created.FirstName, created.LastName)
	}
	if created.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.Confirmed {
		t.Error("new users must start unconfirmed")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID != teamID {
		t.Errorf("TeamID: got %v, want %v", got.TeamID, teamID)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Authenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	teamID := primitive.NewObjectID()
	u, err := store.Create(ctx, models.User{
		FirstName:    "Grace",
		Email:        "grace@example.com",
		PasswordHash: mustHash(t, "correct-horse"),
		TeamID:       teamID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Authenticate(ctx, teamID, "GRACE@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated wrong user: %v", got.ID)
	}

	tests := []struct {
		name     string
		teamID   primitive.ObjectID
		email    string
		password string
	}{
		{"wrong password", teamID, "grace@example.com", "nope"},
		{"unknown email", teamID, "other@example.com", "correct-horse"},
		{"other team", primitive.NewObjectID(), "grace@example.com", "correct-horse"},
		{"empty password", teamID, "grace@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Authenticate(ctx, tt.teamID, tt.email, tt.password)
			if !errors.Is(err, userstore.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestStore_Authenticate_DuplicateEmails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx, userstore.UniqueNone); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	teamID := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.User{Email: "dup@example.com", PasswordHash: mustHash(t, "first-pass"), TeamID: teamID}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := store.Create(ctx, models.User{Email: "dup@example.com", PasswordHash: mustHash(t, "second-pass"), TeamID: teamID})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	got, err := store.Authenticate(ctx, teamID, "dup@example.com", "second-pass")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("expected second user, got %v", got.ID)
	}
}

func TestStore_EnsureIndexes_TeamUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx, userstore.UniqueTeam); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	teamID := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.User{Email: "a@example.com", TeamID: teamID}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{Email: "A@example.com", TeamID: teamID})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	// Same email on another team is fine.
	if _, err := store.Create(ctx, models.User{Email: "a@example.com", TeamID: primitive.NewObjectID()}); err != nil {
		t.Errorf("other team Create failed: %v", err)
	}
}

func TestStore_EnsureIndexes_SwitchModes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		mode string
		want []string
	}{
		{userstore.UniqueNone, []string{"idx_users_team_email"}},
		{userstore.UniqueTeam, []string{"uniq_users_team_email"}},
		{userstore.UniqueTeam, []string{"uniq_users_team_email"}},
		{userstore.UniqueGlobal, []string{"idx_users_team_email", "uniq_users_email"}},
		{userstore.UniqueNone, []string{"idx_users_team_email"}},
	}
	for i, tt := range tests {
		if err := store.EnsureIndexes(ctx, tt.mode); err != nil {
			t.Fatalf("step %d: EnsureIndexes(%q) failed: %v", i, tt.mode, err)
		}
		cur, err := db.Collection("users").Indexes().List(ctx)
		if err != nil {
			t.Fatalf("step %d: list indexes: %v", i, err)
		}
		var specs []bson.M
		if err := cur.All(ctx, &specs); err != nil {
			t.Fatalf("step %d: decode indexes: %v", i, err)
		}
		var got []string
		for _, s := range specs {
			if name, _ := s["name"].(string); name != "_id_" {
				got = append(got, name)
			}
		}
		sort.Strings(got)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("step %d (%s): indexes = %v, want %v", i, tt.mode, got, tt.want)
		}
	}
}

func TestStore_EnsureIndexes_UnknownMode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx, "sometimes"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestStore_Save(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{FirstName: "Old", Email: "old@example.com", TeamID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u.FirstName = "New"
	u.Confirmed = true
	if err := store.Save(ctx, &u); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.FirstName != "New" || !got.Confirmed {
		t.Errorf("changes not persisted: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("UpdatedAt %v before CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestStore_Save_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Save(ctx, &models.User{ID: primitive.NewObjectID(), Email: "ghost@example.com"})
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestValidUniqueness(t *testing.T) {
	for _, m := range []string{"none", "team", "global"} {
		if !userstore.ValidUniqueness(m) {
			t.Errorf("%q should be valid", m)
		}
	}
	if userstore.ValidUniqueness("sometimes") {
		t.Error("unknown mode accepted")
	}
}
