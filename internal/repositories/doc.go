// Package repositories provides the SQLite persistence layer for the sync run.
//
// [GameRepository] owns the games table, [MonthRepository] owns the
// completed_months and month_games tables, and [SQLStore] combines the two
// behind the engine's store contract.
//
// Every mutating operation is a single committed statement: the sync engine
// re-derives "has this been done" from the store on every run, so a crash
// between any two statements leaves a state the next run resumes from.
package repositories
