package main

import (
	"context"

	"github.com/RedDocMD/cc2lc/internal/shared"
	"github.com/RedDocMD/cc2lc/internal/tasks"
	"github.com/RedDocMD/cc2lc/internal/ui"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Sync mirrors the chess.com account's full game history into lichess.
//
// Safe to re-run at any time: already-imported games and already-completed
// past months are skipped, and the most recent month is always re-checked.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd.String("config"))
	quiet := cmd.Bool("quiet")
	if quiet {
		shared.SetLogLevel(r.logger, log.WarnLevel)
	}
	styles := ui.DefaultPalette()

	store, release, err := r.openStore()
	if err != nil {
		return err
	}
	defer release()

	sink, err := r.buildSink()
	if err != nil {
		return err
	}

	engine := tasks.NewArchiveEngine(r.buildSource(), sink, store,
		shared.WithLogger(r.logger, "account", r.config.Source.Username))

	r.logger.Info("starting sync", "account", r.config.Source.Username)
	r.writePlain("%s\n", styles.Title("Syncing chess.com → lichess"))
	r.writePlain("Account: %s\n\n", r.config.Source.Username)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if quiet {
				continue
			}
			switch update.Phase {
			case tasks.FetchMonth:
				r.writePlain("%s\n", update.Message)
			case tasks.ImportGame:
				r.writePlain("  %s\n", update.Message)
			case tasks.CompleteMonth:
				r.writePlain("%s\n", styles.OK(update.Message))
			}
		}
	}()

	result, err := engine.Run(ctx, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		r.writePlain("\n%s\n", styles.Err("Sync aborted; progress so far is saved and the next run resumes from it."))
		return err
	}

	r.writePlain("\n%s\n", styles.Title("Sync complete"))
	r.writePlain("Current month:   %s (always re-checked)\n", result.Current)
	r.writePlain("Months synced:   %d\n", len(result.Months))
	r.writePlain("Months skipped:  %d\n", result.MonthsSkipped)
	r.writePlain("Games imported:  %d\n", result.GamesImported)
	r.writePlain("Games skipped:   %d\n", result.GamesSkipped)

	return nil
}
