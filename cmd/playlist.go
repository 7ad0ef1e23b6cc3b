package main

import (
	"context"

	"github.com/moodsplit/moodsplit/internal/shared"
	"github.com/moodsplit/moodsplit/internal/tasks"
	"github.com/moodsplit/moodsplit/internal/ui"
	"github.com/urfave/cli/v3"
)

// Suggest asks the oracle for category labels based on a sample of the playlist
// without classifying or creating anything.
func (r *Runner) Suggest(ctx context.Context, cmd *cli.Command) error {
	playlistRef := cmd.StringArg("playlist")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	config := r.resolveConfig(cmd)
	if count := cmd.Int("count"); count > 0 && count != config.Split.SuggestionCount {
		override := *config
		override.Split.SuggestionCount = count
		config = &override
	}

	if err := r.authenticateSource(ctx, config); err != nil {
		return err
	}
	if err := r.authenticateOracle(ctx, config); err != nil {
		return err
	}

	r.logger.Info("suggesting categories", "playlist", playlistRef, "count", config.Split.SuggestionCount)

	engine := r.buildEngine(config)
	progressCh := make(chan tasks.ProgressUpdate, 16)
	done := r.consumeProgress(progressCh)

	categories, err := engine.Suggest(ctx, progressCh, playlistRef)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(map[string]any{"categories": categories}, pretty)
	}

	return r.writePlain("\n%s", ui.RenderCategories(categories))
}

// Items lists a playlist's songs in playlist order.
func (r *Runner) Items(ctx context.Context, cmd *cli.Command) error {
	playlistRef := cmd.StringArg("playlist")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	config := r.resolveConfig(cmd)
	if err := r.authenticateSource(ctx, config); err != nil {
		return err
	}

	r.logger.Info("listing playlist items", "playlist", playlistRef)

	engine := r.buildEngine(config)
	progressCh := make(chan tasks.ProgressUpdate, 16)
	done := r.consumeProgress(progressCh)

	songs, err := engine.Items(ctx, progressCh, playlistRef)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(songs, pretty)
	}

	r.writePlain("\nFound %d songs:\n", len(songs))
	for i, song := range songs {
		r.writePlain("%3d. %s (%s)\n", i+1, shared.Truncate(song.Title, 60), song.VideoID)
	}

	return nil
}
