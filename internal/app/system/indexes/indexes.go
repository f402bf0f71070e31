// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/store/audit"
	teamstore "github.com/dalemusser/teamhub/internal/app/store/teams"
	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
)

/*
EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, emailUniqueness string) error {
	var problems []string

	if err := userstore.New(db).EnsureIndexes(ctx, emailUniqueness); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := teamstore.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "teams: "+err.Error())
	}
	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
