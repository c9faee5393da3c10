package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/RedDocMD/cc2lc/internal/models"
	"github.com/RedDocMD/cc2lc/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testGame(n int) *models.Game {
	raw := models.RawGame{
		UUID:        fmt.Sprintf("uuid-%d", n),
		PGN:         "1. e4 e5",
		URL:         fmt.Sprintf("https://www.chess.com/game/live/%d", n),
		TimeControl: "600",
		White:       models.RawPlayer{Username: "reddocmd", ProfileURL: "https://api.chess.com/pub/player/reddocmd", Rating: 1200, Result: "win"},
		Black:       models.RawPlayer{Username: "rival", ProfileURL: "https://api.chess.com/pub/player/rival", Rating: 1180, Result: "checkmated"},
	}
	return models.NewGame(raw, fmt.Sprintf("https://lichess.org/game%04d", n))
}

func TestGameRepository(t *testing.T) {
	t.Run("Create And Exists", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGameRepository(db)

		exists, err := repo.Exists("uuid-1")
		if err != nil {
			t.Fatalf("failed to check existence: %v", err)
		}
		if exists {
			t.Error("expected game to not exist yet")
		}

		id, err := repo.Create(testGame(1))
		if err != nil {
			t.Fatalf("failed to create game: %v", err)
		}
		if id == "" {
			t.Error("expected a generated row ID")
		}

		exists, err = repo.Exists("uuid-1")
		if err != nil {
			t.Fatalf("failed to check existence: %v", err)
		}
		if !exists {
			t.Error("expected game to exist after create")
		}
	})

	t.Run("Duplicate External ID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGameRepository(db)

		if _, err := repo.Create(testGame(1)); err != nil {
			t.Fatalf("failed to create game: %v", err)
		}

		if _, err := repo.Create(testGame(1)); !errors.Is(err, shared.ErrDuplicateGame) {
			t.Errorf("expected ErrDuplicateGame, got %v", err)
		}
	})

	t.Run("IDByExternalID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGameRepository(db)

		id, err := repo.Create(testGame(1))
		if err != nil {
			t.Fatalf("failed to create game: %v", err)
		}

		resolved, err := repo.IDByExternalID("uuid-1")
		if err != nil {
			t.Fatalf("failed to resolve ID: %v", err)
		}
		if resolved != id {
			t.Errorf("expected %s, got %s", id, resolved)
		}

		if _, err := repo.IDByExternalID("uuid-404"); !errors.Is(err, shared.ErrGameNotFound) {
			t.Errorf("expected ErrGameNotFound, got %v", err)
		}
	})

	t.Run("Get Round Trip", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGameRepository(db)

		game := testGame(7)
		id, err := repo.Create(game)
		if err != nil {
			t.Fatalf("failed to create game: %v", err)
		}

		got, err := repo.Get(id)
		if err != nil {
			t.Fatalf("failed to get game: %v", err)
		}

		if got.ExternalID != game.ExternalID {
			t.Errorf("expected external ID %s, got %s", game.ExternalID, got.ExternalID)
		}
		if got.LichessURL != game.LichessURL {
			t.Errorf("expected lichess URL %s, got %s", game.LichessURL, got.LichessURL)
		}
		if got.Outcome != models.OutcomeWhite {
			t.Errorf("expected white outcome, got %s", got.Outcome)
		}
	})

	t.Run("List By Month", func(t *testing.T) {
		db := setupTestDB(t)
		games := NewGameRepository(db)
		months := NewMonthRepository(db)

		jan := models.Month{Month: 1, Year: 2023}
		feb := models.Month{Month: 2, Year: 2023}
		for _, m := range []models.Month{jan, feb} {
			if err := months.MarkCompleted(m); err != nil {
				t.Fatalf("failed to mark month: %v", err)
			}
		}

		for n, m := range map[int]models.Month{1: jan, 2: jan, 3: feb} {
			id, err := games.Create(testGame(n))
			if err != nil {
				t.Fatalf("failed to create game %d: %v", n, err)
			}
			if err := months.LinkGame(id, m); err != nil {
				t.Fatalf("failed to link game %d: %v", n, err)
			}
		}

		janGames, err := games.List(map[string]any{"month": jan})
		if err != nil {
			t.Fatalf("failed to list games: %v", err)
		}
		if len(janGames) != 2 {
			t.Errorf("expected 2 games in %s, got %d", jan, len(janGames))
		}

		all, err := games.List(nil)
		if err != nil {
			t.Fatalf("failed to list all games: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 games, got %d", len(all))
		}
	})
}

func TestMonthRepository(t *testing.T) {
	jan := models.Month{Month: 1, Year: 2023}

	t.Run("MarkCompleted Is Idempotent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMonthRepository(db)

		completed, err := repo.Completed(jan)
		if err != nil {
			t.Fatalf("failed to check completion: %v", err)
		}
		if completed {
			t.Error("expected month to not be completed yet")
		}

		if err := repo.MarkCompleted(jan); err != nil {
			t.Fatalf("failed to mark month: %v", err)
		}
		if err := repo.MarkCompleted(jan); err != nil {
			t.Fatalf("re-marking should be a no-op, got %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM completed_months WHERE month = 1 AND year = 2023").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly one completion row, got %d", count)
		}
	})

	t.Run("LinkGame", func(t *testing.T) {
		t.Run("Idempotent Per Game", func(t *testing.T) {
			db := setupTestDB(t)
			games := NewGameRepository(db)
			months := NewMonthRepository(db)

			if err := months.MarkCompleted(jan); err != nil {
				t.Fatalf("failed to mark month: %v", err)
			}

			id, err := games.Create(testGame(1))
			if err != nil {
				t.Fatalf("failed to create game: %v", err)
			}

			linked, err := months.GameLinked(id)
			if err != nil {
				t.Fatalf("failed to check link: %v", err)
			}
			if linked {
				t.Error("expected game to be unlinked")
			}

			if err := months.LinkGame(id, jan); err != nil {
				t.Fatalf("failed to link game: %v", err)
			}
			if err := months.LinkGame(id, jan); err != nil {
				t.Fatalf("re-linking should be a no-op, got %v", err)
			}

			var count int
			if err := db.QueryRow("SELECT COUNT(*) FROM month_games WHERE game_id = ?", id).Scan(&count); err != nil {
				t.Fatalf("failed to count links: %v", err)
			}
			if count != 1 {
				t.Errorf("expected exactly one link, got %d", count)
			}
		})

		t.Run("Month Must Be Completed", func(t *testing.T) {
			db := setupTestDB(t)
			games := NewGameRepository(db)
			months := NewMonthRepository(db)

			id, err := games.Create(testGame(1))
			if err != nil {
				t.Fatalf("failed to create game: %v", err)
			}

			if err := months.LinkGame(id, jan); err == nil {
				t.Error("expected error linking to uncompleted month")
			}
		})
	})

	t.Run("ListCompleted Ordered Chronologically", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMonthRepository(db)

		for _, m := range []models.Month{
			{Month: 1, Year: 2024},
			{Month: 12, Year: 2022},
			{Month: 1, Year: 2023},
		} {
			if err := repo.MarkCompleted(m); err != nil {
				t.Fatalf("failed to mark month: %v", err)
			}
		}

		months, err := repo.ListCompleted()
		if err != nil {
			t.Fatalf("failed to list months: %v", err)
		}

		want := []models.Month{
			{Month: 12, Year: 2022},
			{Month: 1, Year: 2023},
			{Month: 1, Year: 2024},
		}
		if len(months) != len(want) {
			t.Fatalf("expected %d months, got %d", len(want), len(months))
		}
		for i := range want {
			if !months[i].Equal(want[i]) {
				t.Errorf("position %d: expected %s, got %s", i, want[i], months[i])
			}
		}
	})

	t.Run("GameCount", func(t *testing.T) {
		db := setupTestDB(t)
		games := NewGameRepository(db)
		months := NewMonthRepository(db)

		if err := months.MarkCompleted(jan); err != nil {
			t.Fatalf("failed to mark month: %v", err)
		}

		for n := 1; n <= 3; n++ {
			id, err := games.Create(testGame(n))
			if err != nil {
				t.Fatalf("failed to create game: %v", err)
			}
			if err := months.LinkGame(id, jan); err != nil {
				t.Fatalf("failed to link game: %v", err)
			}
		}

		count, err := months.GameCount(jan)
		if err != nil {
			t.Fatalf("failed to count games: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 linked games, got %d", count)
		}
	})
}
