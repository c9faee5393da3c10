package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/RedDocMD/cc2lc/internal/models"
	"github.com/RedDocMD/cc2lc/internal/shared"
	"github.com/RedDocMD/cc2lc/internal/ui"
	"github.com/urfave/cli/v3"
)

// archiveStatus is one row of the archives listing.
type archiveStatus struct {
	Month     string `json:"month"`
	URL       string `json:"url"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// Archives lists the account's archive months with their completion status.
func (r *Runner) Archives(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd.String("config"))

	store, release, err := r.openStore()
	if err != nil {
		return err
	}
	defer release()

	refs, err := r.buildSource().ListArchives(ctx)
	if err != nil {
		return err
	}

	months := make([]models.Month, 0, len(refs))
	for _, ref := range refs {
		month, err := models.MonthFromArchiveURL(ref)
		if err != nil {
			return err
		}
		months = append(months, month)
	}

	current, err := models.MostRecentMonth(months)
	if err != nil {
		return err
	}

	statuses := make([]archiveStatus, 0, len(refs))
	for i, ref := range refs {
		completed, err := store.MonthCompleted(months[i])
		if err != nil {
			return err
		}
		statuses = append(statuses, archiveStatus{
			Month:     months[i].String(),
			URL:       ref,
			Completed: completed,
			Current:   months[i].Equal(current),
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(statuses, true)
	}

	styles := ui.DefaultPalette()
	r.writePlain("%s\n", styles.Title(fmt.Sprintf("Archives for %s", r.config.Source.Username)))
	for i, status := range statuses {
		marker := styles.Warn("pending")
		if status.Completed {
			count, err := store.Months().GameCount(months[i])
			if err != nil {
				return err
			}
			marker = styles.OK(fmt.Sprintf("completed, %d games", count))
		}
		if status.Current {
			marker += styles.Help(" (current, always re-checked)")
		}
		r.writePlain("%s  %s\n", status.Month, marker)
	}

	return nil
}

// Games lists imported games recorded in the local database.
func (r *Runner) Games(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd.String("config"))

	store, release, err := r.openStore()
	if err != nil {
		return err
	}
	defer release()

	criteria := map[string]any{}
	if monthFlag := cmd.String("month"); monthFlag != "" {
		month, err := parseMonthFlag(monthFlag)
		if err != nil {
			return err
		}
		criteria["month"] = month
	}

	games, err := store.Games().List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(games, true)
	}

	for _, game := range games {
		r.writePlain("%s  %s vs %s (%s)  %s\n",
			game.ExternalID, game.White, game.Black, game.Outcome, game.LichessURL)
	}
	r.writePlain("%d games\n", len(games))

	return nil
}

// parseMonthFlag parses a YYYY-MM value into a [models.Month].
func parseMonthFlag(value string) (models.Month, error) {
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return models.Month{}, fmt.Errorf("%w: month must be YYYY-MM, got %q", shared.ErrInvalidArgument, value)
	}

	// Reuse the archive reference parser; it wants year then month segments.
	month, err := models.MonthFromArchiveURL(parts[0] + "/" + parts[1])
	if err != nil {
		return models.Month{}, fmt.Errorf("%w: month must be YYYY-MM, got %q", shared.ErrInvalidArgument, value)
	}

	return month, nil
}
