package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RedDocMD/cc2lc/internal/models"
	"github.com/RedDocMD/cc2lc/internal/shared"
)

// MonthRepository persists month completion facts and the association between
// games and the month they were discovered in.
type MonthRepository struct {
	db *sql.DB
}

// NewMonthRepository creates a new MonthRepository with the given database connection
func NewMonthRepository(db *sql.DB) *MonthRepository {
	return &MonthRepository{db: db}
}

// Completed reports whether the month has been marked fully processed.
func (r *MonthRepository) Completed(m models.Month) (bool, error) {
	var found bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM completed_months WHERE month = ? AND year = ?)",
		m.Month, m.Year,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check month completion: %w", err)
	}

	return found, nil
}

// MarkCompleted records that every game of the month has been accounted for.
//
// Idempotent: the months table is unique on (month, year) and re-marking an
// already completed month is a silent no-op. The current month is re-marked
// on every run.
func (r *MonthRepository) MarkCompleted(m models.Month) error {
	_, err := r.db.Exec(`
		INSERT INTO completed_months (id, month, year, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (month, year) DO NOTHING
	`, shared.GenerateID(), m.Month, m.Year, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark month completed: %w", err)
	}

	return nil
}

// GameLinked reports whether the game is already associated with a month.
func (r *MonthRepository) GameLinked(gameID string) (bool, error) {
	var found bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM month_games WHERE game_id = ?)", gameID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check game link: %w", err)
	}

	return found, nil
}

// LinkGame associates a recorded game with the completed month it was
// discovered in. Idempotent per game: a second link attempt is a no-op, so a
// game keeps the month it was first seen under.
func (r *MonthRepository) LinkGame(gameID string, m models.Month) error {
	var monthID string
	err := r.db.QueryRow("SELECT id FROM completed_months WHERE month = ? AND year = ?", m.Month, m.Year).Scan(&monthID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("cannot link game %s: month %s is not completed", gameID, m)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve month row: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO month_games (game_id, month_id)
		VALUES (?, ?)
		ON CONFLICT (game_id) DO NOTHING
	`, gameID, monthID)
	if err != nil {
		return fmt.Errorf("failed to link game to month: %w", err)
	}

	return nil
}

// ListCompleted returns every completed month, oldest first.
func (r *MonthRepository) ListCompleted() ([]models.Month, error) {
	rows, err := r.db.Query("SELECT month, year FROM completed_months ORDER BY year ASC, month ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query completed months: %w", err)
	}
	defer rows.Close()

	var months []models.Month
	for rows.Next() {
		var m models.Month
		if err := rows.Scan(&m.Month, &m.Year); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return months, nil
}

// GameCount returns the number of games linked to the month.
func (r *MonthRepository) GameCount(m models.Month) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM month_games
		JOIN completed_months ON completed_months.id = month_games.month_id
		WHERE completed_months.month = ? AND completed_months.year = ?
	`, m.Month, m.Year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count month games: %w", err)
	}

	return count, nil
}
