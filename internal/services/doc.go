// Package services implements the HTTP clients for the two chess services.
//
// [GamesSource] is the chess.com public API: it lists the archive months of an
// account and fetches the games recorded in one month. [GameSink] is the
// lichess import API: it submits one game's PGN and returns the URL of the
// imported game, absorbing lichess rate limiting by waiting out the cooldown
// and retrying.
//
// Neither client retries transport failures; those propagate to the sync
// engine, which aborts the run and relies on store state for resumption.
package services
