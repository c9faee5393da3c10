package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RedDocMD/cc2lc/internal/models"
	"github.com/RedDocMD/cc2lc/internal/shared"
)

// GameRepository persists imported games.
//
// A row is written once per chess.com UUID, after the lichess import
// succeeded, and never updated or deleted.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository with the given database connection
func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Exists reports whether a game with the given chess.com UUID is recorded.
func (r *GameRepository) Exists(externalID string) (bool, error) {
	var found bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM games WHERE external_id = ?)", externalID).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("failed to check game existence: %w", err)
	}

	return found, nil
}

// Create inserts a new game and returns its generated row ID.
//
// Returns [shared.ErrDuplicateGame] if the external ID is already present;
// callers are expected to check [Exists] first, so hitting this means the
// check-then-act sequence was broken.
func (r *GameRepository) Create(game *models.Game) (string, error) {
	if err := game.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	exists, err := r.Exists(game.ExternalID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", shared.ErrDuplicateGame, game.ExternalID)
	}

	id := shared.GenerateID()
	query := `
		INSERT INTO games (
			id, external_id, pgn, lichess_url, source_url, time_control,
			white, white_url, white_rating, black, black_url, black_rating,
			outcome, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		game.ExternalID,
		game.PGN,
		game.LichessURL,
		game.SourceURL,
		game.TimeControl,
		game.White,
		game.WhiteURL,
		game.WhiteRating,
		game.Black,
		game.BlackURL,
		game.BlackRating,
		string(game.Outcome),
		time.Now(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert game: %w", err)
	}

	return id, nil
}

// IDByExternalID resolves a chess.com UUID to the stored row ID.
func (r *GameRepository) IDByExternalID(externalID string) (string, error) {
	var id string
	err := r.db.QueryRow("SELECT id FROM games WHERE external_id = ?", externalID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: external ID %s", shared.ErrGameNotFound, externalID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve game ID: %w", err)
	}

	return id, nil
}

// Get retrieves a game by its row ID.
func (r *GameRepository) Get(id string) (*models.Game, error) {
	query := selectGames + " WHERE id = ?"

	row := r.db.QueryRow(query, id)
	game, err := scanGame(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrGameNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return game, nil
}

// List retrieves games matching the given criteria, ordered by insertion time.
//
// Supported criteria: "outcome" (string), "month" (models.Month) restricting
// to games linked to that completed month.
func (r *GameRepository) List(criteria map[string]any) ([]*models.Game, error) {
	query := selectGames
	args := []any{}

	if month, ok := criteria["month"].(models.Month); ok {
		query += `
			JOIN month_games ON month_games.game_id = games.id
			JOIN completed_months ON completed_months.id = month_games.month_id
			WHERE completed_months.month = ? AND completed_months.year = ?
		`
		args = append(args, month.Month, month.Year)
	} else {
		query += " WHERE 1 = 1"
	}

	if outcome, ok := criteria["outcome"].(string); ok && outcome != "" {
		query += " AND games.outcome = ?"
		args = append(args, outcome)
	}

	query += " ORDER BY games.created_at ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return games, nil
}

const selectGames = `
	SELECT games.external_id, games.pgn, games.lichess_url, games.source_url,
		games.time_control, games.white, games.white_url, games.white_rating,
		games.black, games.black_url, games.black_rating, games.outcome
	FROM games
`

// scanGame scans one games row; works for both [sql.Row] and [sql.Rows].
func scanGame(scan func(...any) error) (*models.Game, error) {
	var (
		game    models.Game
		outcome string
	)

	err := scan(
		&game.ExternalID,
		&game.PGN,
		&game.LichessURL,
		&game.SourceURL,
		&game.TimeControl,
		&game.White,
		&game.WhiteURL,
		&game.WhiteRating,
		&game.Black,
		&game.BlackURL,
		&game.BlackRating,
		&outcome,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}

	parsed, err := models.ParseOutcome(outcome)
	if err != nil {
		return nil, err
	}
	game.Outcome = parsed

	return &game, nil
}
