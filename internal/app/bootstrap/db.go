// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/teamhub/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes every store relies on. The users
// collection gets a unique email index when email_uniqueness asks for one.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.TeamHubMongoDatabase, appCfg.EmailUniqueness); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	logger.Info("schema ensured", zap.String("email_uniqueness", appCfg.EmailUniqueness))
	return nil
}
