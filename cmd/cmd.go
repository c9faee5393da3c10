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

// setupCommand initializes the database and config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize config file and database, run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// syncCommand runs the batch sync job
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Mirror chess.com game history into lichess",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress per-game progress output",
			},
		},
		Action: r.Sync,
	}
}

// archivesCommand lists archive months and their completion status
func archivesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "archives",
		Aliases: []string{"arc"},
		Usage:   "List archive months with completion status",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Archives,
	}
}

// gamesCommand lists imported games from the local store
func gamesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "games",
		Usage: "List imported games from the local database",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "month",
				Aliases: []string{"m"},
				Usage:   "Restrict to one month (YYYY-MM)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Games,
	}
}
