package repositories

import (
	"database/sql"

	"github.com/RedDocMD/cc2lc/internal/models"
)

// SQLStore combines the game and month repositories behind the sync engine's
// store contract (tasks.Store).
type SQLStore struct {
	games  *GameRepository
	months *MonthRepository
}

// NewSQLStore creates a SQLStore over an open database. The caller owns the
// connection's lifecycle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		games:  NewGameRepository(db),
		months: NewMonthRepository(db),
	}
}

// Games exposes the underlying game repository for CLI listings.
func (s *SQLStore) Games() *GameRepository {
	return s.games
}

// Months exposes the underlying month repository for CLI listings.
func (s *SQLStore) Months() *MonthRepository {
	return s.months
}

func (s *SQLStore) GameExists(externalID string) (bool, error) {
	return s.games.Exists(externalID)
}

func (s *SQLStore) RecordGame(game *models.Game) (string, error) {
	return s.games.Create(game)
}

func (s *SQLStore) GameID(externalID string) (string, error) {
	return s.games.IDByExternalID(externalID)
}

func (s *SQLStore) MonthCompleted(m models.Month) (bool, error) {
	return s.months.Completed(m)
}

func (s *SQLStore) MarkMonthCompleted(m models.Month) error {
	return s.months.MarkCompleted(m)
}

func (s *SQLStore) GameLinked(gameID string) (bool, error) {
	return s.months.GameLinked(gameID)
}

func (s *SQLStore) LinkGame(gameID string, m models.Month) error {
	return s.months.LinkGame(gameID, m)
}

func (s *SQLStore) CompletedMonths() ([]models.Month, error) {
	return s.months.ListCompleted()
}
