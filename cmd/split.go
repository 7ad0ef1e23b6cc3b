package main

import (
	"context"

	"github.com/moodsplit/moodsplit/internal/formatter"
	"github.com/moodsplit/moodsplit/internal/tasks"
	"github.com/moodsplit/moodsplit/internal/ui"
	"github.com/urfave/cli/v3"
)

// Split runs the full pipeline: read the playlist, classify every song, and
// create one playlist per category.
//
// Materialization failures are partial: the summary reports per-category
// outcomes and the command still exits non-zero when the run was aborted.
func (r *Runner) Split(ctx context.Context, cmd *cli.Command) error {
	playlistRef := cmd.StringArg("playlist")
	categories := tasks.CleanCategories([]string{cmd.String("categories")})
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	reportPath := cmd.String("output")
	reportFormat := cmd.String("format")

	config := r.resolveConfig(cmd)
	if err := r.authenticateSource(ctx, config); err != nil {
		return err
	}
	if err := r.authenticateOracle(ctx, config); err != nil {
		return err
	}

	r.logger.Info("starting split", "playlist", playlistRef, "categories", len(categories))
	r.writePlain("Splitting playlist %s...\n\n", playlistRef)

	engine := r.buildEngine(config)
	progressCh := make(chan tasks.ProgressUpdate, 64)
	done := r.consumeProgress(progressCh)

	result, runErr := engine.Run(ctx, progressCh, tasks.SplitRequest{
		PlaylistRef:      playlistRef,
		CustomCategories: categories,
	})
	close(progressCh)
	<-done

	if result != nil {
		if useJSON {
			if err := r.writeJSON(result, pretty); err != nil {
				return err
			}
		} else {
			r.writePlain("\n%s", ui.RenderSummary(result))
		}

		if reportPath != "" {
			if err := formatter.WriteReport(result, reportFormat, reportPath); err != nil {
				return err
			}
			r.logger.Info("report written", "path", reportPath, "format", reportFormat)
		}
	}

	return runErr
}
