package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/teamhub/internal/app/system/authutil"
	"github.com/dalemusser/teamhub/internal/app/system/normalize"
	"github.com/dalemusser/teamhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Email uniqueness modes accepted by EnsureIndexes.
const (
	UniqueNone   = "none"
	UniqueTeam   = "team"
	UniqueGlobal = "global"
)

var (
	// ErrNotFound is returned when no user matches the given id.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned by Authenticate for any mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is returned when a unique email index rejects a write.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// ValidUniqueness reports whether mode is a known email uniqueness mode.
func ValidUniqueness(mode string) bool {
	switch mode {
	case UniqueNone, UniqueTeam, UniqueGlobal:
		return true
	}
	return false
}

// Index names managed by EnsureIndexes.
const (
	idxTeamEmail    = "idx_users_team_email"
	uniqTeamEmail   = "uniq_users_team_email"
	uniqGlobalEmail = "uniq_users_email"
)

// EnsureIndexes creates the (team_id, email) lookup index used by
// Authenticate, unique when mode is UniqueTeam, plus a unique email index when
// mode is UniqueGlobal. Managed indexes left over from a different mode are
// dropped first, since Mongo refuses two indexes on the same keys.
func (s *Store) EnsureIndexes(ctx context.Context, mode string) error {
	teamEmail := bson.D{{Key: "team_id", Value: 1}, {Key: "email", Value: 1}}
	var idx []mongo.IndexModel
	switch mode {
	case UniqueNone, "":
		idx = []mongo.IndexModel{
			{Keys: teamEmail, Options: options.Index().SetName(idxTeamEmail)},
		}
	case UniqueTeam:
		idx = []mongo.IndexModel{
			{Keys: teamEmail, Options: options.Index().SetName(uniqTeamEmail).SetUnique(true)},
		}
	case UniqueGlobal:
		idx = []mongo.IndexModel{
			{Keys: teamEmail, Options: options.Index().SetName(idxTeamEmail)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName(uniqGlobalEmail).SetUnique(true)},
		}
	default:
		return fmt.Errorf("unknown email uniqueness mode %q", mode)
	}

	want := make(map[string]bool, len(idx))
	for _, m := range idx {
		want[*m.Options.Name] = true
	}
	existing, err := s.indexNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range []string{idxTeamEmail, uniqTeamEmail, uniqGlobalEmail} {
		if existing[name] && !want[name] {
			if _, err := s.c.Indexes().DropOne(ctx, name); err != nil {
				return fmt.Errorf("drop index %s: %w", name, err)
			}
		}
	}

	_, err = s.c.Indexes().CreateMany(ctx, idx)
	return err
}

// indexNames lists the names of the indexes currently on the collection.
func (s *Store) indexNames(ctx context.Context) (map[string]bool, error) {
	cur, err := s.c.Indexes().List(ctx)
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 26 { // NamespaceNotFound
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list indexes: %w", err)
	}
	defer cur.Close(ctx)

	names := map[string]bool{}
	for cur.Next(ctx) {
		var ix struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&ix); err != nil {
			return nil, fmt.Errorf("decode index: %w", err)
		}
		names[ix.Name] = true
	}
	return names, cur.Err()
}

// GetByID loads a user by ObjectID. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByTeamEmail returns the oldest user on teamID with email.
func (s *Store) GetByTeamEmail(ctx context.Context, teamID primitive.ObjectID, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx,
		bson.M{"team_id": teamID, "email": normalize.Email(email)},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing name and email fields.
// The caller supplies PasswordHash and TeamID.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate finds the user on teamID whose email and password match.
// Every kind of mismatch, including an unknown team, returns
// ErrInvalidCredentials. Several users may share an email on one team when
// uniqueness is off; the first whose password matches wins.
func (s *Store) Authenticate(ctx context.Context, teamID primitive.ObjectID, email, password string) (*models.User, error) {
	email = normalize.Email(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	cur, err := s.c.Find(ctx,
		bson.M{"team_id": teamID, "email": email},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		if authutil.CheckPassword(password, u.PasswordHash) {
			return &u, nil
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return nil, ErrInvalidCredentials
}

// Save writes the full user document back, refreshing UpdatedAt.
func (s *Store) Save(ctx context.Context, u *models.User) error {
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)
	u.UpdatedAt = time.Now().UTC()

	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
