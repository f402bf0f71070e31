package teamstore_test

import (
	"errors"
	"testing"

	teamstore "github.com/dalemusser/teamhub/internal/app/store/teams"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/dalemusser/teamhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_FoldsAdminsIntoMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := primitive.NewObjectID()
	member := primitive.NewObjectID()

	created, err := store.Create(ctx, models.Team{
		Name:      "Platform",
		MemberIDs: []primitive.ObjectID{member},
		AdminIDs:  []primitive.ObjectID{admin},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.HasMember(admin) || !got.HasMember(member) {
		t.Errorf("members: %v", got.MemberIDs)
	}
	if !got.HasAdmin([]string{admin.Hex()}) {
		t.Error("admin lost")
	}
	if got.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, teamstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_GetByName_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Team{Name: "Blue Team"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := store.GetByName(ctx, "blue team")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got team %v, want %v", got.ID, created.ID)
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Team{Name: "Ops"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Team{Name: "OPS"}); !errors.Is(err, teamstore.ErrDuplicateTeam) {
		t.Errorf("expected ErrDuplicateTeam, got %v", err)
	}
}

func TestStore_AddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team, err := store.Create(ctx, models.Team{Name: "Red"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	uid := primitive.NewObjectID()
	for i := 0; i < 2; i++ {
		if err := store.AddMember(ctx, team.ID, uid); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}

	got, err := store.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.MemberIDs) != 1 || got.MemberIDs[0] != uid {
		t.Errorf("members: %v", got.MemberIDs)
	}
	if got.HasAdmin([]string{uid.Hex()}) {
		t.Error("plain member must not be admin")
	}

	if err := store.AddMember(ctx, primitive.NewObjectID(), uid); !errors.Is(err, teamstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing team, got %v", err)
	}
}

func TestStore_AddAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	team, err := store.Create(ctx, models.Team{Name: "Green"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	uid := primitive.NewObjectID()
	if err := store.AddAdmin(ctx, team.ID, uid); err != nil {
		t.Fatalf("AddAdmin failed: %v", err)
	}
	got, _ := store.GetByID(ctx, team.ID)
	if !got.HasAdmin([]string{uid.Hex()}) || !got.HasMember(uid) {
		t.Errorf("admin not recorded as admin and member: %+v", got)
	}
}
