package main

import (
	"context"
	"errors"
	"os"

	"github.com/moodsplit/moodsplit/internal/services"
	"github.com/moodsplit/moodsplit/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	sourceService := services.NewYouTubeService("")
	oracleService := services.NewGeminiService("")

	runner := NewRunner(RunnerOpts{
		Config: config,
		Source: sourceService,
		Oracle: oracleService,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "moodsplit",
		Usage:    "Split a YouTube playlist into mood playlists with Gemini",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrMissingCredentials) {
			logger.Error("missing credentials, run `moodsplit setup` and fill in config.toml")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a configuration file and check credentials",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
