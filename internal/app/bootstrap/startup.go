// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	teamstore "github.com/dalemusser/teamhub/internal/app/store/teams"
	userstore "github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/authutil"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// Teams are never created over HTTP, so a fresh install needs a first team
// and admin: seed_team_name / seed_admin_email create them when missing.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedTeamName == "" {
		return nil
	}
	return ensureSeedTeam(ctx, deps, appCfg.SeedTeamName, appCfg.SeedAdminEmail, appCfg.SeedAdminPassword, logger)
}

// ensureSeedTeam creates the named team if missing and, when adminEmail is
// set, makes that user (created if missing) an admin of it. It is safe to
// run on every start.
func ensureSeedTeam(ctx context.Context, deps DBDeps, teamName, adminEmail, adminPassword string, logger *zap.Logger) error {
	teams := teamstore.New(deps.TeamHubMongoDatabase)
	users := userstore.New(deps.TeamHubMongoDatabase)

	team, err := teams.GetByName(ctx, teamName)
	switch {
	case errors.Is(err, teamstore.ErrNotFound):
		team, err = teams.Create(ctx, models.Team{Name: teamName})
		if err != nil {
			return fmt.Errorf("create seed team: %w", err)
		}
		logger.Info("created seed team", zap.String("team", team.Name), zap.String("team_id", team.ID.Hex()))
	case err != nil:
		return fmt.Errorf("load seed team: %w", err)
	}

	if adminEmail == "" {
		return nil
	}

	admin, err := users.GetByTeamEmail(ctx, team.ID, adminEmail)
	if errors.Is(err, userstore.ErrNotFound) {
		if err := authutil.ValidatePassword(adminPassword); err != nil {
			return fmt.Errorf("seed_admin_password: %w", err)
		}
		hash, err := authutil.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hash seed admin password: %w", err)
		}
		created, err := users.Create(ctx, models.User{
			FirstName:    "Team",
			LastName:     "Admin",
			Email:        adminEmail,
			PasswordHash: hash,
			Confirmed:    true,
			TeamID:       team.ID,
		})
		if err != nil {
			return fmt.Errorf("create seed admin: %w", err)
		}
		admin = &created
		logger.Info("created seed admin", zap.String("email", admin.Email), zap.String("user_id", admin.ID.Hex()))
	} else if err != nil {
		return fmt.Errorf("load seed admin: %w", err)
	}

	if team.HasAdmin([]string{admin.ID.Hex()}) {
		return nil
	}
	if err := teams.AddAdmin(ctx, team.ID, admin.ID); err != nil {
		return fmt.Errorf("promote seed admin: %w", err)
	}
	logger.Info("promoted seed admin", zap.String("email", admin.Email), zap.String("team_id", team.ID.Hex()))
	return nil
}
