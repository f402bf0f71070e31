// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/teamhub/internal/app/system/normalize"
	"github.com/dalemusser/teamhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("team not found")
	ErrDuplicateTeam = errors.New("a team with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("teams")}
}

// EnsureIndexes creates the unique folded-name index and the member lookup index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_teams_name_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "member_ids", Value: 1}},
			Options: options.Index().SetName("idx_teams_member_ids"),
		},
	})
	return err
}

// Create inserts a team. Admins are folded into members before the write.
func (s *Store) Create(ctx context.Context, t models.Team) (models.Team, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Name = normalize.Name(t.Name)
	t.NameCI = text.Fold(t.Name)
	t.Normalize()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Team{}, ErrDuplicateTeam
		}
		return models.Team{}, err
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Team{}, ErrNotFound
		}
		return models.Team{}, err
	}
	return t, nil
}

// GetByName looks a team up by case-insensitive name.
func (s *Store) GetByName(ctx context.Context, name string) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(normalize.Name(name))}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Team{}, ErrNotFound
		}
		return models.Team{}, err
	}
	return t, nil
}

// AddMember appends userID to member_ids if not already present.
func (s *Store) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	return s.addTo(ctx, teamID, bson.M{"member_ids": userID})
}

// AddAdmin makes userID an admin, and therefore also a member.
func (s *Store) AddAdmin(ctx context.Context, teamID, userID primitive.ObjectID) error {
	return s.addTo(ctx, teamID, bson.M{"member_ids": userID, "admin_ids": userID})
}

func (s *Store) addTo(ctx context.Context, teamID primitive.ObjectID, fields bson.M) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": teamID},
		bson.M{
			"$addToSet": fields,
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
