package main

import (
	"context"
	"os"

	"github.com/moodsplit/moodsplit/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates a configuration file from the embedded template and reports
// which credentials are still missing.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file already exists", "path", configPath)
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.writePlain("Configuration: %s\n\n", configPath)
	r.writePlain("YouTube API key:    %s\n", credentialStatus(config.Credentials.YouTube.APIKey))
	r.writePlain("YouTube OAuth:      %s\n", credentialStatus(config.Credentials.YouTube.OAuthToken))
	r.writePlain("Gemini API key:     %s\n", credentialStatus(config.Credentials.Gemini.APIKey))
	r.writePlain("\nEdit %s to fill in missing credentials.\n", configPath)

	return nil
}

func credentialStatus(value string) string {
	if value == "" {
		return "missing"
	}
	return "configured"
}
