package tasks

import (
	"context"

	"github.com/RedDocMD/cc2lc/internal/models"
	"github.com/RedDocMD/cc2lc/internal/services"
	"github.com/RedDocMD/cc2lc/internal/shared"
	"github.com/charmbracelet/log"
)

// Store is the durable record the engine replays its decisions from.
//
// Implemented by repositories.SQLStore. Every mutation commits before the
// engine takes the next dependent step.
type Store interface {
	// GameExists reports whether a game with the external ID is recorded.
	GameExists(externalID string) (bool, error)

	// RecordGame persists a fully imported game and returns its row ID.
	RecordGame(game *models.Game) (string, error)

	// GameID resolves an external ID to the stored row ID.
	GameID(externalID string) (string, error)

	// MonthCompleted reports whether the month is marked fully processed.
	MonthCompleted(m models.Month) (bool, error)

	// MarkMonthCompleted marks the month processed; a no-op when already marked.
	MarkMonthCompleted(m models.Month) error

	// GameLinked reports whether the game already belongs to a month.
	GameLinked(gameID string) (bool, error)

	// LinkGame associates the game with the month; a no-op when already linked.
	LinkGame(gameID string, m models.Month) error

	// CompletedMonths returns every completed month.
	CompletedMonths() ([]models.Month, error)
}

// SyncEngine defines the full-history sync operation.
type SyncEngine interface {
	// Run mirrors every not-yet-completed archive month into lichess,
	// reprocessing the most recent month unconditionally.
	Run(ctx context.Context, progress chan<- ProgressUpdate) (*SyncRunResult, error)
}

// ArchiveEngine implements [SyncEngine].
type ArchiveEngine struct {
	source services.GamesSource
	sink   services.GameSink
	store  Store
	logger *log.Logger
}

// NewArchiveEngine creates an ArchiveEngine with the provided collaborators.
func NewArchiveEngine(source services.GamesSource, sink services.GameSink, store Store, logger *log.Logger) *ArchiveEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &ArchiveEngine{
		source: source,
		sink:   sink,
		store:  store,
		logger: logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ArchiveEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
