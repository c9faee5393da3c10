package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/RedDocMD/cc2lc/internal/models"
)

// MonthSyncResult summarizes one processed archive month.
type MonthSyncResult struct {
	Month         models.Month
	GamesImported int // Games submitted to lichess this run
	GamesSkipped  int // Games the store already had
	TotalGames    int // Games the archive reported
}

// SyncRunResult contains all data from a full sync run.
type SyncRunResult struct {
	Current       models.Month      // The always-reprocessed most recent month
	Months        []MonthSyncResult // Per-month detail, in processing order
	MonthsSkipped int               // Months already completed and not current
	GamesImported int               // Total games submitted this run
	GamesSkipped  int               // Total games already present
}

// archive pairs a month with the reference URL that addresses it.
type archive struct {
	month models.Month
	url   string
}

// Run performs a full chess.com → lichess sync of the account's history.
//
// Any error other than the sink's internally handled rate limiting aborts the
// run; progress committed so far stays valid and the next run resumes from it.
func (e *ArchiveEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*SyncRunResult, error) {
	e.sendProgress(progress, fetchingArchivesUpdate())

	refs, err := e.source.ListArchives(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}

	archives := make([]archive, 0, len(refs))
	for _, ref := range refs {
		month, err := models.MonthFromArchiveURL(ref)
		if err != nil {
			return nil, err
		}
		archives = append(archives, archive{month: month, url: ref})
	}

	months := make([]models.Month, len(archives))
	for i, a := range archives {
		months[i] = a.month
	}

	current, err := models.MostRecentMonth(months)
	if err != nil {
		return nil, err
	}

	// Oldest first; the listing order is not guaranteed.
	sort.SliceStable(archives, func(i, j int) bool {
		return models.CompareMonths(archives[i].month, archives[j].month) < 0
	})

	e.logger.Info("starting sync", "months", len(archives), "current", current)

	result := &SyncRunResult{Current: current}
	for _, a := range archives {
		// The current month is never trusted as final: games keep landing in
		// it after a run has seen it, so its completion mark is ignored.
		if !a.month.Equal(current) {
			completed, err := e.store.MonthCompleted(a.month)
			if err != nil {
				return nil, fmt.Errorf("failed to check month %s: %w", a.month, err)
			}
			if completed {
				e.logger.Debug("month already completed, skipping", "month", a.month)
				result.MonthsSkipped++
				continue
			}
		}

		monthResult, err := e.processMonth(ctx, a.month, a.url, progress)
		if err != nil {
			return nil, fmt.Errorf("failed to process month %s: %w", a.month, err)
		}

		result.Months = append(result.Months, *monthResult)
		result.GamesImported += monthResult.GamesImported
		result.GamesSkipped += monthResult.GamesSkipped
	}

	e.logger.Info("sync complete",
		"months_processed", len(result.Months),
		"months_skipped", result.MonthsSkipped,
		"games_imported", result.GamesImported,
		"games_skipped", result.GamesSkipped,
	)

	return result, nil
}

// processMonth imports every missing game of one archive month, then marks the
// month complete and links its games to it.
//
// The order of operations is what makes a crash recoverable: a game is
// recorded only after its import returned a URL, the completion mark is
// written only after every game is recorded, and links are written only after
// the completion mark exists.
func (e *ArchiveEngine) processMonth(ctx context.Context, month models.Month, url string, progress chan<- ProgressUpdate) (*MonthSyncResult, error) {
	e.sendProgress(progress, fetchingMonthUpdate(month))

	games, err := e.source.FetchGames(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}

	result := &MonthSyncResult{Month: month, TotalGames: len(games)}
	for i, raw := range games {
		exists, err := e.store.GameExists(raw.UUID)
		if err != nil {
			return nil, fmt.Errorf("failed to check game %s: %w", raw.UUID, err)
		}
		if exists {
			e.logger.Debug("already imported, skipping", "uuid", raw.UUID)
			result.GamesSkipped++
			continue
		}

		lichessURL, err := e.sink.ImportGame(ctx, raw.PGN)
		if err != nil {
			return nil, fmt.Errorf("failed to import game %s: %w", raw.UUID, err)
		}

		if _, err := e.store.RecordGame(models.NewGame(raw, lichessURL)); err != nil {
			return nil, fmt.Errorf("failed to record game %s: %w", raw.UUID, err)
		}

		e.logger.Info("imported game", "uuid", raw.UUID, "url", lichessURL)
		e.sendProgress(progress, importedGameUpdate(i+1, len(games), month))
		result.GamesImported++
	}

	completed, err := e.store.MonthCompleted(month)
	if err != nil {
		return nil, fmt.Errorf("failed to check completion: %w", err)
	}
	if !completed {
		if err := e.store.MarkMonthCompleted(month); err != nil {
			return nil, err
		}
	}

	for _, raw := range games {
		gameID, err := e.store.GameID(raw.UUID)
		if err != nil {
			return nil, err
		}

		linked, err := e.store.GameLinked(gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to check link for %s: %w", raw.UUID, err)
		}
		if !linked {
			if err := e.store.LinkGame(gameID, month); err != nil {
				return nil, err
			}
		}
	}

	e.logger.Info("month complete", "month", month, "imported", result.GamesImported, "skipped", result.GamesSkipped)
	e.sendProgress(progress, completedMonthUpdate(month, result.GamesImported))

	return result, nil
}
