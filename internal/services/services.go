package services

import (
	"context"

	"github.com/RedDocMD/cc2lc/internal/models"
)

// userAgent identifies this tool to both services.
const userAgent = "cc2lc"

// GamesSource lists a chess.com account's archive months and fetches the games
// recorded in one of them.
type GamesSource interface {
	// ListArchives returns the archive reference URLs for the account, in the
	// order the service reports them (not necessarily chronological).
	ListArchives(ctx context.Context) ([]string, error)

	// FetchGames returns every game in the archive addressed by archiveURL,
	// preserving the order of the payload.
	FetchGames(ctx context.Context, archiveURL string) ([]models.RawGame, error)
}

// GameSink submits a single game to the destination service and returns the
// URL of the imported game.
type GameSink interface {
	// ImportGame submits a PGN and returns the destination URL. Rate limiting
	// is handled inside the call; any error it returns is final.
	ImportGame(ctx context.Context, pgn string) (string, error)
}
