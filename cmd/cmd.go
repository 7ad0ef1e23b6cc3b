// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// splitCommand runs the full split pipeline
func splitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "split",
		Usage: "Split a playlist into one playlist per category",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "playlist",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "categories",
				Usage: "Comma-separated category labels (skips suggestion)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write a run report to this path",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Report format: json, csv, markdown, txt",
				Value: "json",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Split,
	}
}

// suggestCommand previews category labels without creating playlists
func suggestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest categories for a playlist without splitting it",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "playlist",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of categories to request",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Suggest,
	}
}

// itemsCommand lists playlist contents
func itemsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "items",
		Aliases: []string{"ls"},
		Usage:   "List the songs in a playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "playlist",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Items,
	}
}
