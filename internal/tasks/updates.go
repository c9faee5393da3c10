package tasks

import (
	"fmt"

	"github.com/RedDocMD/cc2lc/internal/models"
)

// ProgressUpdate represents a progress event during a sync run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase        // Operation phase
	Step    int          // Current step number within phase
	Total   int          // Total steps in this phase
	Month   models.Month // Month being processed, when applicable
	Message string       // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchArchives Phase = iota
	FetchMonth
	ImportGame
	CompleteMonth
)

func (p Phase) String() string {
	switch p {
	case FetchArchives:
		return "fetch_archives"
	case FetchMonth:
		return "fetch_month"
	case ImportGame:
		return "import_game"
	case CompleteMonth:
		return "complete_month"
	default:
		return ""
	}
}

func fetchingArchivesUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArchives,
		Message: "Fetching archive list from chess.com...",
	}
}

func fetchingMonthUpdate(month models.Month) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMonth,
		Month:   month,
		Message: fmt.Sprintf("Fetching games for %s...", month),
	}
}

func importedGameUpdate(step, total int, month models.Month) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportGame,
		Step:    step,
		Total:   total,
		Month:   month,
		Message: fmt.Sprintf("Imported game %d/%d of %s", step, total, month),
	}
}

func completedMonthUpdate(month models.Month, imported int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CompleteMonth,
		Month:   month,
		Message: fmt.Sprintf("Completed %s (%d new games)", month, imported),
	}
}
