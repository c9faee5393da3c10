// Package tasks implements the idempotent chess.com to lichess sync.
//
// The core abstraction is [SyncEngine], implemented by [ArchiveEngine]: it
// enumerates the account's archive months, skips months the store already
// marks complete, and imports the games of the remaining months one by one.
// The most recent month is never trusted as final and is reprocessed on every
// run, since chess.com keeps appending games to it.
//
// Execution is strictly sequential. Every "has this been done" decision is
// re-derived from the store, never from in-memory bookkeeping, so a crash at
// any point leaves a state the next run resumes from: a game is either fully
// recorded with its lichess URL or absent, and a month is marked complete
// only after all of its games are recorded.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI layer.
package tasks
