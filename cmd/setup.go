package main

import (
	"context"
	"fmt"
	"os"

	"github.com/RedDocMD/cc2lc/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the config file and database, running migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}
	r.loadConfig(configPath)

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	_, release, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer release()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("Database ready at %s\n", r.config.Database.Path)
	r.writePlain("Set the lichess API token in $%s before running 'cc2lc sync'\n", tokenEnvName(r.config))
	return nil
}

func tokenEnvName(config *shared.Config) string {
	if config.Destination.TokenEnv != "" {
		return config.Destination.TokenEnv
	}
	return "LICHESS_TOKEN"
}
