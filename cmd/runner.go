package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/moodsplit/moodsplit/internal/services"
	"github.com/moodsplit/moodsplit/internal/shared"
	"github.com/moodsplit/moodsplit/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	source services.SourceService
	oracle services.OracleService
	logger *log.Logger
	output io.Writer
	engine tasks.SplitEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Source services.SourceService
	Oracle services.OracleService
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config: opts.Config,
		source: opts.Source,
		oracle: opts.Oracle,
		logger: opts.Logger,
		output: opts.Output,
	}
	r.engine = r.buildEngine(opts.Config)

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, splitCommand, suggestCommand, itemsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// buildEngine assembles a split engine whose batch sizes and pacing come from config.
// Reuses the runner's engine when the config is unchanged.
func (r *Runner) buildEngine(config *shared.Config) tasks.SplitEngine {
	if config == r.config && r.engine != nil {
		return r.engine
	}

	return tasks.NewPlaylistSplitter(r.source, r.oracle, tasks.SplitterOpts{
		BatchSize:       config.Split.BatchSize,
		SampleSize:      config.Split.SampleSize,
		SuggestionCount: config.Split.SuggestionCount,
		BatchPacer:      tasks.NewPacer(time.Duration(config.Split.BatchDelayMS) * time.Millisecond),
		InsertPacer:     tasks.NewPacer(time.Duration(config.Split.InsertDelayMS) * time.Millisecond),
	})
}

// resolveConfig reloads configuration from the --config flag path when the file
// exists, falling back to the runner's config otherwise.
func (r *Runner) resolveConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		return r.config
	}
	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using existing", "path", path, "error", err)
		return r.config
	}

	return config
}

// authenticateSource applies YouTube credentials from config to the source service.
func (r *Runner) authenticateSource(ctx context.Context, config *shared.Config) error {
	if r.source == nil {
		return fmt.Errorf("%w: source service not configured", shared.ErrServiceUnavailable)
	}

	err := r.source.Authenticate(ctx, map[string]string{
		"api_key":     config.Credentials.YouTube.APIKey,
		"oauth_token": config.Credentials.YouTube.OAuthToken,
		"privacy":     config.Split.Privacy,
	})
	if err != nil {
		return fmt.Errorf("%s authentication failed: %w", r.source.Name(), err)
	}

	return nil
}

// authenticateOracle applies Gemini credentials from config to the oracle service.
func (r *Runner) authenticateOracle(ctx context.Context, config *shared.Config) error {
	if r.oracle == nil {
		return fmt.Errorf("%w: oracle service not configured", shared.ErrServiceUnavailable)
	}

	err := r.oracle.Authenticate(ctx, map[string]string{
		"api_key": config.Credentials.Gemini.APIKey,
		"model":   config.Credentials.Gemini.Model,
	})
	if err != nil {
		return fmt.Errorf("%s authentication failed: %w", r.oracle.Name(), err)
	}

	return nil
}

// consumeProgress drains progress updates onto the output writer. The returned
// channel closes once the progress channel is exhausted.
func (r *Runner) consumeProgress(progress <-chan tasks.ProgressUpdate) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			switch update.Phase {
			case tasks.Extracting, tasks.Grouping:
				r.writePlain("%s\n", update.Message)
			case tasks.Reading:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.Suggesting:
				r.writePlain("💡 %s\n", update.Message)
			case tasks.Classifying:
				r.writePlain("🔍 %s\n", update.Message)
			case tasks.Materializing:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.Done:
				r.writePlain("✓ %s\n", update.Message)
			case tasks.Failed:
				r.writePlain("✗ %s\n", update.Message)
			}
		}
	}()

	return done
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
